package random

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Alphabet содержит 62 символа: строчные, прописные латинские буквы и цифры
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var ErrInvalidLength = errors.New("random string length must be positive")

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// NewRandomString генерирует строку заданной длины из Alphabet.
// Используется crypto/rand, чтобы короткие коды нельзя было предсказать.
func NewRandomString(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		b[i] = Alphabet[n.Int64()]
	}

	return string(b), nil
}
