// Package auth provides credential hashing for login comparison.
package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"fiwa/internal/core"
)

// HashPassword maps (password, salt) to a fixed-length hex digest.
// The same inputs always produce the same digest; that property is what
// authentication relies on when comparing against the stored hash.
func HashPassword(password, salt string) (string, error) {
	if salt == "" {
		return "", &core.ValidationError{Field: "salt", Reason: "required for password hashing"}
	}
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:]), nil
}
