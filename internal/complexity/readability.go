package complexity

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[A-Za-z0-9']+`)

// countWords returns the number of word tokens in text.
func countWords(text string) int {
	return len(wordPattern.FindAllString(text, -1))
}

// gradeLevel estimates a Flesch-Kincaid-style grade level. Grades below
// zero are reported as zero.
func gradeLevel(text string) float64 {
	words := wordPattern.FindAllString(text, -1)
	if len(words) == 0 {
		return 0
	}
	sentences := countSentences(text)
	syllables := 0
	for _, word := range words {
		syllables += countSyllables(word)
	}

	grade := 0.39*(float64(len(words))/float64(sentences)) +
		11.8*(float64(syllables)/float64(len(words))) - 15.59
	if grade < 0 {
		return 0
	}
	return grade
}

// countSentences counts sentence terminators, treating the whole text as
// one sentence when none are present.
func countSentences(text string) int {
	count := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// countSyllables estimates syllables as vowel groups, with a silent-e
// adjustment and a minimum of one.
func countSyllables(word string) int {
	lower := strings.ToLower(word)
	count := 0
	previousVowel := false
	for _, r := range lower {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !previousVowel {
			count++
		}
		previousVowel = vowel
	}
	if strings.HasSuffix(lower, "e") && count > 1 {
		count--
	}
	if count == 0 {
		return 1
	}
	return count
}
