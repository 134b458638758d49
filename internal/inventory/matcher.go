package inventory

import "strings"

// normalizeName lowercases and strips everything except letters and
// digits, so "Grey-Goose " and "grey goose" compare equal.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Match resolves a free-text ingredient name to an inventory item.
//
// Exact normalized equality wins first; failing that, the first
// candidate where either normalized name contains the other as a
// substring. No similarity scoring: first match in iteration order
// wins, and ambiguous names ("Vodka" vs "Citrus Vodka") resolve to
// whichever candidate comes first. Returns nil when nothing matches.
func Match(ingredientName string, candidates []Item) *Item {
	needle := normalizeName(ingredientName)
	if needle == "" {
		return nil
	}

	for i := range candidates {
		if normalizeName(candidates[i].Name) == needle {
			return &candidates[i]
		}
	}

	for i := range candidates {
		cand := normalizeName(candidates[i].Name)
		if cand == "" {
			continue
		}
		if strings.Contains(cand, needle) || strings.Contains(needle, cand) {
			return &candidates[i]
		}
	}

	return nil
}
