package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
}

func TestRandomAlphabetString(t *testing.T) {
	s := RandomAlphabetString(8)
	assert.Equal(t, 8, len(s))
	assert.NotEqual(t, s, RandomAlphabetString(8))
}

func TestTextToMd5Hash(t *testing.T) {
	hash, err := TextToMd5Hash("blogmux")
	assert.Nil(t, err)
	assert.Equal(t, 32, len(hash))

	same, _ := TextToMd5Hash("blogmux")
	assert.Equal(t, hash, same)
}

func TestGetExtNameWithDot(t *testing.T) {
	assert.Equal(t, ".png", GetExtNameWithDot("avatar.png"))
	assert.Equal(t, "", GetExtNameWithDot("no_extension"))
}
