package security

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

func HashPassword(password string, salt string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(salt+password)))
}

// GenerateHash returns a random token used for password reset links.
func GenerateHash() string {
	buffer := make([]byte, 32)
	rand.Read(buffer)
	return fmt.Sprintf("%x", sha256.Sum256(buffer))
}
