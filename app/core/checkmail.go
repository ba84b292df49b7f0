package core

import (
	"errors"
	"regexp"
	"unicode"
)

var (
	ErrBadFormat = errors.New("invalid email format")

	emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
)

func ValidateFormat(email string) error {
	if !emailRegexp.MatchString(email) {
		return ErrBadFormat
	}
	return nil
}

func ValidatePassword(password string) error {
	upperCase := false
	lowerCase := false
	number := false
	for _, c := range password {
		switch {
		case unicode.IsNumber(c) || unicode.IsDigit(c):
			number = true
		case unicode.IsUpper(c):
			upperCase = true
		case unicode.IsLower(c):
			lowerCase = true
		}
	}
	if !upperCase || !lowerCase || !number {
		return errors.New(PasswordMessage)
	}
	if len(password) < PasswordMinLength {
		return errors.New(PasswordMessage)
	}
	return nil
}
