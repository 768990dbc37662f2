package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"

	"contactagenda/internal/domain"
)

// BcryptHasher implements PasswordHasher with bcrypt at cost 12.
//
// bcrypt only reads the first 72 bytes of its input, so the password is
// pre-hashed with SHA-256 and base64-encoded first. The 44-byte result fits
// the limit and keeps passwords that share a long prefix distinct.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: 12}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", &domain.ValidationError{Field: "password", Message: "password cannot be empty"}
	}
	digest, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify returns false for empty input or a malformed digest instead of
// surfacing an error, so callers cannot tell the failure modes apart.
func (h *BcryptHasher) Verify(password, digest string) bool {
	if password == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), prehash(password)) == nil
}

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
