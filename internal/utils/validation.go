package utils

import (
	"errors"
	"unicode"
)

const minPasswordLength = 8

// ValidatePassword 要求密码至少 8 位，并且同时包含字母和数字
func ValidatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return errors.New("密码长度不能少于 8 位")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return errors.New("密码必须同时包含字母和数字")
	}

	return nil
}
