package random_test

import (
	"strings"
	"testing"

	"LinkGate-Backend/pkg/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandomString_Length(t *testing.T) {
	for _, length := range []int{1, 4, 6, 12, 64} {
		s, err := random.NewRandomString(length)
		require.NoError(t, err)
		assert.Len(t, s, length)
	}
}

func TestNewRandomString_OnlyAlphanumeric(t *testing.T) {
	for i := 0; i < 1000; i++ {
		s, err := random.NewRandomString(6)
		require.NoError(t, err)
		for _, c := range s {
			assert.True(t, strings.ContainsRune(random.Alphabet, c), "unexpected char %q in %q", c, s)
		}
	}
}

func TestNewRandomString_InvalidLength(t *testing.T) {
	_, err := random.NewRandomString(0)
	assert.ErrorIs(t, err, random.ErrInvalidLength)

	_, err = random.NewRandomString(-3)
	assert.ErrorIs(t, err, random.ErrInvalidLength)
}

func TestNewRandomString_UniqueStatistically(t *testing.T) {
	seen := make(map[string]struct{})
	const count = 10000
	for i := 0; i < count; i++ {
		s, err := random.NewRandomString(10)
		require.NoError(t, err)
		seen[s] = struct{}{}
	}
	// 62^10 комбинаций: коллизии на 10k строк практически исключены
	assert.Len(t, seen, count)
}

func TestAlphabet_Has62Chars(t *testing.T) {
	assert.Len(t, random.Alphabet, 62)
}
