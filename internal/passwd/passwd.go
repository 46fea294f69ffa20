// Package passwd hashes and verifies user passwords with argon2id.
//
// Hashes are stored in the PHC string format, e.g.
//
//	$argon2id$v=19$m=65536,t=1,p=4$<base64 salt>$<base64 key>
//
// so the salt and cost parameters travel with the hash.
package passwd

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLen    = 16
	keyLen     = 32
	timeCost   = 1
	memoryCost = 64 * 1024
	threads    = 4

	// maxMemoryCost caps the m parameter accepted from a stored hash.
	maxMemoryCost = 1024 * 1024
)

// MinLength is the shortest password accepted on registration and update.
const MinLength = 6

// Acceptable reports whether a candidate password passes the length policy.
func Acceptable(password string) bool {
	return len(password) >= MinLength
}

// Hash derives an argon2id key from password under a fresh random salt and
// returns the PHC-encoded result.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt generation: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, timeCost, memoryCost, threads, keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryCost, timeCost, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify checks password against a PHC-encoded hash. A malformed or empty
// stored value counts as a mismatch, never an error; Verify still performs a
// key derivation in that case so the failure path costs the same as a real
// comparison.
func Verify(password, encoded string) bool {
	salt, key, memory, time, par, ok := decode(encoded)
	if !ok {
		DummyVerify(password)
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, time, memory, par, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// dummySalt is fixed; DummyVerify only needs to burn the same work as a real
// verification, the result is discarded.
var dummySalt = []byte("accesskeeper.dmy")

// DummyVerify performs a key derivation of the same cost as Verify and
// discards the result. Called when a login does not exist so response timing
// does not reveal which logins are registered.
func DummyVerify(password string) {
	argon2.IDKey([]byte(password), dummySalt, timeCost, memoryCost, threads, keyLen)
}

func decode(encoded string) (salt, key []byte, memory uint32, time uint32, par uint8, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &par); err != nil {
		return nil, nil, 0, 0, 0, false
	}
	// argon2.IDKey panics on zero rounds or parallelism; an oversized memory
	// cost in a tampered row would make every verify an OOM. Treat all of
	// these as malformed.
	if time < 1 || par < 1 || memory > maxMemoryCost {
		return nil, nil, 0, 0, 0, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, false
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, false
	}

	return salt, key, memory, time, par, true
}
