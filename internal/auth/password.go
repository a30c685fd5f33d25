package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hache un mot de passe avec bcrypt (salé, lent).
// Le mot de passe en clair n'est jamais stocké ni loggé.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compare un mot de passe en clair à son hash
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
