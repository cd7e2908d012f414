package service

import (
	"fmt"
	"unicode/utf8"
)

const (
	// characters per minute for the full article body
	contentCharsPerMinute = 1000
	// characters per minute for the list excerpt
	excerptCharsPerMinute = 100
)

// ContentReadTime estimates read time of a full article body
func ContentReadTime(content string) string {
	return readTime(content, contentCharsPerMinute)
}

// ExcerptReadTime estimates read time shown in the article list.
// It is derived from the excerpt with its own divisor, not from the body.
func ExcerptReadTime(excerpt string) string {
	return readTime(excerpt, excerptCharsPerMinute)
}

func readTime(text string, perMinute int) string {
	minutes := utf8.RuneCountInString(text) / perMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d мин", minutes)
}
