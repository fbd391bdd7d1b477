package valueobjects

import (
	"fmt"
	"unicode"
)

// PasswordPolicy describes the plain-text password rules checked before hashing.
type PasswordPolicy struct {
	MinLength     int
	RequireLetter bool
	RequireNumber bool
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 8}
}

func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return fmt.Errorf("password must not exceed 72 characters")
	}

	var hasLetter, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsNumber(r):
			hasNumber = true
		}
	}
	if p.RequireLetter && !hasLetter {
		return fmt.Errorf("password must contain at least one letter")
	}
	if p.RequireNumber && !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}
