package security

import (
	"fmt"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher хэширует и проверяет пароли через bcrypt.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash возвращает bcrypt-хэш пароля. Пустой пароль — ошибка.
func (hasher *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("пароль не может быть пустым")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}

	return string(hashed), nil
}

// Verify сравнивает пароль с хэшем. Несовпадение — не ошибка, а false.
func (hasher *PasswordHasher) Verify(plaintext string, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	return err == nil
}
