// Package validator проверяет входные данные до любых обращений к хранилищу.
package validator

import (
	"errors"
	"net/url"
)

const (
	MaxURLLength  = 2048
	MaxSlugLength = 64
)

var (
	ErrInvalidURL  = errors.New("invalid URL: scheme and host are required")
	ErrInvalidSlug = errors.New("invalid slug: only letters, digits, '-' and '_' are allowed")
)

// IsValidURL возвращает true, если строка разбирается в абсолютный URL
// с непустыми схемой и хостом. Относительные и пустые строки отклоняются.
func IsValidURL(s string) bool {
	if s == "" || len(s) > MaxURLLength {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}

// IsValidSlug возвращает true для непустой строки из [a-zA-Z0-9_-] длиной до MaxSlugLength.
func IsValidSlug(s string) bool {
	if s == "" || len(s) > MaxSlugLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isSlugChar(s[i]) {
			return false
		}
	}
	return true
}

// ValidateURL - то же, что IsValidURL, но с ошибкой для вызывающего кода
func ValidateURL(s string) error {
	if !IsValidURL(s) {
		return ErrInvalidURL
	}
	return nil
}

// ValidateSlug - то же, что IsValidSlug, но с ошибкой для вызывающего кода
func ValidateSlug(s string) error {
	if !IsValidSlug(s) {
		return ErrInvalidSlug
	}
	return nil
}

func isSlugChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}
