package helper

import (
	"crypto/sha512"
	"encoding/hex"
)

// HashPassword returns the hex encoded SHA-512 digest stored in users.yml.
func HashPassword(password string) string {
	sum := sha512.Sum512([]byte(password))

	return hex.EncodeToString(sum[:])
}
