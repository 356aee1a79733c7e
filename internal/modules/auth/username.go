package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// newUsername returns a random lowercase hex handle. Signup retries on the
// unlikely collision with an existing username.
func newUsername(length int) (string, error) {
	if length < 4 {
		length = 4
	}
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:length], nil
}
