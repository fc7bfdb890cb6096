// Package production contains the pure business logic for production
// runs. This file contains ID and naming rules for engine-created
// output items.
package production

import (
	"fmt"
	"strings"
	"time"
)

// GenerateRunID generates a run ID from the current max number.
// The format is RUN-XXX where XXX is a zero-padded 3-digit number.
func GenerateRunID(currentMax int) string {
	return fmt.Sprintf("RUN-%03d", currentMax+1)
}

// GenerateItemID generates an item ID from the current max number.
// The format is ITEM-XXX where XXX is a zero-padded 3-digit number.
func GenerateItemID(currentMax int) string {
	return fmt.Sprintf("ITEM-%03d", currentMax+1)
}

// NormalizeName canonicalizes an item or recipe name for case-insensitive
// exact matching: lowercased, trimmed, inner whitespace collapsed.
// The items table keeps a unique index on this form, which is what turns
// the create-or-find race into a detectable constraint violation.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Slug converts a recipe name into an identifier-safe slug:
// lowercase, hyphen-separated, non-alphanumerics dropped.
func Slug(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// OutputCode derives the external code for an engine-created output item:
// the recipe-name slug plus a short collision-resistant suffix mixed from
// the clock and a caller-supplied random value. The caller passes both so
// this stays a pure function.
func OutputCode(recipeName string, now time.Time, nonce uint32) string {
	suffix := (uint64(now.UnixNano()) ^ uint64(nonce)) & 0xFFFFFF
	return fmt.Sprintf("%s-%06x", Slug(recipeName), suffix)
}
