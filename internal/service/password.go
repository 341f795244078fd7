package service

import (
	"golang.org/x/crypto/bcrypt"

	"cmsapi/internal/model"
)

func hashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func passwordMatches(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// isPasswordReused reports whether the candidate matches any retained
// previous password hash.
func isPasswordReused(plain string, history []model.PasswordEntry) bool {
	for _, entry := range history {
		if passwordMatches(plain, entry.Password) {
			return true
		}
	}
	return false
}

// oldestPasswordEntry returns the history entry with the earliest CreatedAt.
func oldestPasswordEntry(history []model.PasswordEntry) *model.PasswordEntry {
	if len(history) == 0 {
		return nil
	}
	oldest := &history[0]
	for i := 1; i < len(history); i++ {
		if history[i].CreatedAt.Before(oldest.CreatedAt) {
			oldest = &history[i]
		}
	}
	return oldest
}
