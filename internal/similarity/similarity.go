// Package similarity scores how alike two lines or two groups of context lines are.
package similarity

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

// DefaultGramSize is the length of the character k-grams compared by Cosine.
const DefaultGramSize = 3

var whitespace = regexp.MustCompile(`\s+`)

// Levenshtein returns 1 - distance/maxLength, so identical strings score 1.0
// and strings with nothing in common score 0.0.
func Levenshtein(first, second string) float64 {
	maxLen := max(utf8.RuneCountInString(first), utf8.RuneCountInString(second))
	if maxLen == 0 {
		return 1
	}
	distance := levenshtein.Distance(first, second, nil)
	return 1 - float64(distance)/float64(maxLen)
}

// Cosine compares the character k-gram profiles of two strings.
// Runs of whitespace count as a single space. Empty input scores 0.
func Cosine(first, second string, gramSize int) float64 {
	if first == "" || second == "" {
		return 0
	}
	if first == second {
		return 1
	}
	if gramSize <= 0 {
		gramSize = DefaultGramSize
	}

	firstProfile := profile(first, gramSize)
	secondProfile := profile(second, gramSize)
	if len(firstProfile) == 0 || len(secondProfile) == 0 {
		return 0
	}

	dot := 0.0
	for gram, count := range firstProfile {
		dot += float64(count * secondProfile[gram])
	}
	return dot / (norm(firstProfile) * norm(secondProfile))
}

// Context compares the concatenated context contents of two lines.
func Context(deleted, added entities.Line) float64 {
	return Cosine(joinTrimmed(deleted.ContextLines), joinTrimmed(added.ContextLines), DefaultGramSize)
}

// RoundToStep rounds value to the nearest multiple of step, where step divides 1.
func RoundToStep(value, step float64) float64 {
	steps := math.Round(1 / step)
	return math.Round(value*steps) / steps
}

func joinTrimmed(lines []entities.Line) string {
	var builder strings.Builder
	for _, l := range lines {
		builder.WriteString(strings.TrimSpace(l.Content))
	}
	return builder.String()
}

func profile(text string, gramSize int) map[string]int {
	runes := []rune(whitespace.ReplaceAllString(text, " "))
	grams := make(map[string]int)
	for i := 0; i+gramSize <= len(runes); i++ {
		grams[string(runes[i:i+gramSize])]++
	}
	return grams
}

func norm(profile map[string]int) float64 {
	sum := 0.0
	for _, count := range profile {
		sum += float64(count * count)
	}
	return math.Sqrt(sum)
}
