package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidCategories - в ответе модели нет массива категорий или он не разбирается.
var ErrInvalidCategories = errors.New("AI response does not contain a category array")

// bracketedArray matches the first [...] block, lazily, across lines.
var bracketedArray = regexp.MustCompile(`(?s)\[.*?\]`)

// ParseCategories extracts the first bracketed array from free text and decodes
// it as a list of strings.
func ParseCategories(text string) ([]string, error) {
	match := bracketedArray.FindString(text)
	if match == "" {
		return nil, ErrInvalidCategories
	}
	var categories []string
	if err := json.Unmarshal([]byte(match), &categories); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategories, err)
	}
	cleaned := categories[:0]
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrInvalidCategories)
	}
	return cleaned, nil
}
