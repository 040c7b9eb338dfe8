package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategories(t *testing.T) {
	t.Run("Array embedded in prose", func(t *testing.T) {
		got, err := ParseCategories(`Here: ["Sumas","Restas","Multiplicación","Divisiones","Porcentajes"]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"Sumas", "Restas", "Multiplicación", "Divisiones", "Porcentajes"}, got)
	})

	t.Run("Markdown fence and newlines", func(t *testing.T) {
		got, err := ParseCategories("```json\n[\n  \"Sumas\",\n  \" Restas \",\n  \"\"\n]\n```")
		require.NoError(t, err)
		assert.Equal(t, []string{"Sumas", "Restas"}, got)
	})

	t.Run("First array wins", func(t *testing.T) {
		got, err := ParseCategories(`["A","B"] and later ["C"]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, got)
	})

	for name, input := range map[string]string{
		"no brackets":     "Sumas, Restas",
		"not strings":     "[1, 2, 3]",
		"broken json":     `["Sumas", Restas]`,
		"empty array":     "[]",
		"only whitespace": `["  ", ""]`,
	} {
		t.Run("Rejects "+name, func(t *testing.T) {
			got, err := ParseCategories(input)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrInvalidCategories)
		})
	}
}

func TestPrompts(t *testing.T) {
	assert.Equal(t, "2+2\n(Respuesta: 4)", formatManualQuestion("2+2", "4"))
	assert.True(t, strings.Contains(buildCategoriesPrompt("fractions"), `tema: "fractions"`))
	assert.True(t, strings.Contains(buildQuestionPrompt("sums"), `categoría: "sums"`))
}
