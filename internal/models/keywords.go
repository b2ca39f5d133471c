package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SearchKeywords tokenizes the given text fields into a lower-cased,
// deduplicated keyword set. Tokens of two characters or fewer are
// dropped.
func SearchKeywords(fields ...string) []string {
	seen := make(map[string]bool)
	keywords := make([]string, 0)

	for _, field := range fields {
		tokens := strings.FieldsFunc(strings.ToLower(field), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		for _, token := range tokens {
			if utf8.RuneCountInString(token) <= 2 || seen[token] {
				continue
			}
			seen[token] = true
			keywords = append(keywords, token)
		}
	}

	return keywords
}
