package buildinfo

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "1.2.3"

	var buf bytes.Buffer
	PrintBuildData(&buf)

	assert.Contains(t, buf.String(), "trackly version 1.2.3")
	assert.Contains(t, buf.String(), "Git commit: N/A")
	assert.Contains(t, buf.String(), runtime.Version())
}
