package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"1m30s"`, want: 90 * time.Second},
		{name: "nanoseconds", in: `1000000000`, want: time.Second},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
		{name: "garbage", in: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{5 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `"5s"`, string(b))
}

func TestTimestampRoundTripAndOrdering(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	a := time.Date(2026, 3, 1, 12, 0, 0, 0, loc)
	b := a.Add(500 * time.Millisecond)

	sa, sb := FormatTimestamp(a), FormatTimestamp(b)
	assert.Equal(t, "2026-03-01T09:00:00.000000000Z", sa)
	assert.Less(t, sa, sb)

	back, err := ParseTimestamp(sb)
	require.NoError(t, err)
	assert.True(t, back.Equal(b))
	assert.Equal(t, time.UTC, back.Location())

	_, err = ParseTimestamp("yesterday")
	require.Error(t, err)
}

func TestParseTimestamp_SQLiteDefault(t *testing.T) {
	got, err := ParseTimestamp("2026-03-04 05:06:07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC), got)

	_, err = ParseTimestamp("yesterday")
	require.Error(t, err)
}
