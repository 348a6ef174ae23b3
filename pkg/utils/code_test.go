package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomCode(t *testing.T) {
	code, err := RandomCode(8)

	assert.NoError(t, err)
	assert.Len(t, code, 8)
	for _, c := range code {
		assert.Contains(t, codeCharset, string(c))
	}

	// 不含易混淆字符
	assert.NotContains(t, code, "0")
	assert.NotContains(t, code, "O")
	assert.NotContains(t, code, "1")
	assert.NotContains(t, code, "I")
}

func TestRandomDigits(t *testing.T) {
	code, err := RandomDigits(6)

	assert.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, "", strings.Trim(code, "0123456789"))
}
