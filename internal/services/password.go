package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type PasswordService struct {
	cost int
}

func NewPasswordService() *PasswordService {
	return &PasswordService{cost: bcryptCost}
}

// NewPasswordServiceWithCost exists for tests, which use bcrypt.MinCost
// to avoid paying the full work factor per hash.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

func (s *PasswordService) Hash(plaintext string) (string, error) {
	// bcrypt silently truncates input beyond 72 bytes; reject instead.
	if len(plaintext) > 72 {
		return "", fmt.Errorf("password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *PasswordService) Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
