package evaluator

import "strings"

// constraintTrigger marks a negative-constraint prompt. The forbidden words
// are the single-quoted tokens in the clause that follows it.
const constraintTrigger = "without using the words"

// wordFamilies expands a quoted root to the closely related words the
// constraint is understood to cover. Checking only the literal root lets
// trivial synonym swaps slip through ("road" for 'wheel').
var wordFamilies = map[string][]string{
	"wheel":     {"wheel", "engine", "drive", "road"},
	"recursion": {"recursion", "recursive"},
}

// ForbiddenWords derives the forbidden-word list from a negative-constraint
// prompt. Each single-quoted token after the trigger phrase contributes one
// forbidden word, lowercased; tokens with a known word family contribute the
// whole family. Order follows the input, duplicates are dropped. Returns nil
// when the trigger phrase is absent or nothing is quoted.
func ForbiddenWords(input string) []string {
	idx := strings.Index(strings.ToLower(input), constraintTrigger)
	if idx < 0 {
		return nil
	}
	clause := input[idx+len(constraintTrigger):]

	var out []string
	seen := make(map[string]struct{})
	add := func(word string) {
		if word == "" {
			return
		}
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}

	for _, token := range quotedTokens(clause) {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if family, ok := wordFamilies[token]; ok {
			for _, word := range family {
				add(word)
			}
			continue
		}
		add(token)
	}
	return out
}

// quotedTokens returns the spans between paired single quotes, in order.
// An unmatched trailing quote contributes nothing.
func quotedTokens(s string) []string {
	parts := strings.Split(s, "'")
	if len(parts) < 3 {
		return nil
	}

	var out []string
	for i := 1; i < len(parts); i += 2 {
		out = append(out, parts[i])
	}
	if len(parts)%2 == 0 {
		// Even part count means the last quote never closed; the final
		// collected span is not actually quoted.
		out = out[:len(out)-1]
	}
	return out
}
