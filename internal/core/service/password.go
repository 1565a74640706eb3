package service

import (
	"errors"
	"unicode"
)

// Password policy errors carry the exact rule that failed; the register
// response surfaces them verbatim so the user knows what to change.
var (
	ErrPasswordTooShort  = errors.New("use at least 8 characters")
	ErrPasswordUppercase = errors.New("use at least 1 uppercase")
	ErrPasswordDigit     = errors.New("use at least 1 number")
	ErrPasswordSymbol    = errors.New("use at least 1 special character")
	ErrPasswordMismatch  = errors.New("passwords do not match")
)

// checkPasswordPolicy validates a candidate password against the account
// policy, returning the first rule it violates.
func checkPasswordPolicy(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			symbol = true
		}
	}

	if !upper {
		return ErrPasswordUppercase
	}
	if !digit {
		return ErrPasswordDigit
	}
	if !symbol {
		return ErrPasswordSymbol
	}
	return nil
}
