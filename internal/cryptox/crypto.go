// Package cryptox implements the credential store used for account passwords.
//
// Passwords are hashed with Argon2id and a fresh random salt per call. The
// result is encoded in the PHC string format so that the parameters travel
// with the hash:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<key>
//
// Salt and key are encoded with unpadded standard base64.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/trackly/internal/common"
	"golang.org/x/crypto/argon2"
)

// Params holds the Argon2id cost parameters.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  int
	KeyLength   uint32
}

// DefaultParams are the OWASP-recommended minimums for Argon2id.
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Upper bounds accepted when hashing and when reading a stored hash. A
// corrupted hash must not make verification allocate without limit.
const (
	maxMemory     = 256 * 1024 // KiB
	maxIterations = 16
	maxKeyLength  = 128
)

var errMalformedHash = errors.New("malformed password hash")

// generateSalt is a test seam for the salt source.
var generateSalt = common.GenerateRandByteArray

// HashPassword derives an Argon2id hash of password with DefaultParams.
func HashPassword(password []byte) (string, error) {
	return HashPasswordWithParams(password, DefaultParams)
}

// HashPasswordWithParams derives an Argon2id hash of password using p.
func HashPasswordWithParams(password []byte, p Params) (string, error) {
	if p.SaltLength <= 0 || p.KeyLength == 0 || p.Iterations == 0 || p.Parallelism == 0 ||
		p.Memory > maxMemory || p.Iterations > maxIterations || p.KeyLength > maxKeyLength {
		return "", fmt.Errorf("invalid argon2 params: %+v", p)
	}
	salt := generateSalt(p.SaltLength)
	key := argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches the encoded hash.
// A malformed hash never matches.
func VerifyPassword(encoded string, password []byte) bool {
	p, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func decodeHash(encoded string) (Params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, errMalformedHash
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return Params{}, nil, nil, errMalformedHash
	}
	if p.Iterations == 0 || p.Parallelism == 0 || p.Memory > maxMemory || p.Iterations > maxIterations {
		return Params{}, nil, nil, errMalformedHash
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Params{}, nil, nil, errMalformedHash
	}
	key, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxKeyLength {
		return Params{}, nil, nil, errMalformedHash
	}
	p.SaltLength = len(salt)
	p.KeyLength = uint32(len(key))

	return p, salt, key, nil
}
