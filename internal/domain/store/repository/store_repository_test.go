package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryJSON(t *testing.T) {
	t.Run("Plain category", func(t *testing.T) {
		assert.Equal(t, `["coffee"]`, categoryJSON("coffee"))
	})

	t.Run("Category with quotes and backslashes stays valid JSON", func(t *testing.T) {
		for _, category := range []string{`mexi"can`, `a\b`, "日本料理", ""} {
			out := categoryJSON(category)

			assert.True(t, json.Valid([]byte(out)), "not valid JSON: %s", out)

			var decoded []string
			assert.NoError(t, json.Unmarshal([]byte(out), &decoded))
			assert.Equal(t, []string{category}, decoded)
		}
	})
}
