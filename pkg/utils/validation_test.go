package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"ana@example.com",
		"first.last+tag@sub-domain.co.at",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"plainstring",
		"@example.com",
		"ana@",
		"ana@com",
		"ana @example.com",
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidPassword(t *testing.T) {
	valid := []string{
		"Str0ng!pass",
		"Aa1!aaaa",
	}
	for _, p := range valid {
		assert.True(t, IsValidPassword(p), p)
	}

	invalid := []string{
		"",
		"Sh0rt!a",
		"alllowercase1!",
		"NOUPPERMISSING?",
		"NoSpecial123",
		"NoDigits!!",
	}
	for _, p := range invalid {
		assert.False(t, IsValidPassword(p), p)
	}
}
