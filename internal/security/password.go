package security

import "golang.org/x/crypto/bcrypt"

// bcrypt cost 12 keeps hashing deliberately slow; each call salts
// freshly, so two hashes of the same password never match.
const bcryptCost = 12

// HashPassword converts a plaintext password to its stored bcrypt hash.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
