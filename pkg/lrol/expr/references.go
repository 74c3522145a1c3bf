package expr

import "strings"

// ReferencePrefix marks a reference token.
const ReferencePrefix = "@"

// ExtractReferences returns the names referenced by @tokens in text, in order
// of appearance. A bare "@" yields the empty name.
func ExtractReferences(text string) []string {
	var refs []string
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, ReferencePrefix) {
			refs = append(refs, word[len(ReferencePrefix):])
		}
	}
	return refs
}
