package format

// noBreakGuard keeps configured word pairs together across line breaks.
type noBreakGuard struct {
	pairs []NoBreakPair
}

func (g noBreakGuard) forbidden(left, right string) bool {
	for _, p := range g.pairs {
		if p.Matches(left, right) {
			return true
		}
	}
	return false
}

// cutIndex returns the index of the first word to move to the next line so
// that the break falls between two words no pair binds together. It
// returns 0 when the break before next is allowed, or when every boundary
// on the line is bound; a line is never emptied.
func (g noBreakGuard) cutIndex(words []string, next string) int {
	n := len(words)
	if n == 0 || !g.forbidden(words[n-1], next) {
		return 0
	}
	for k := n - 1; k >= 1; k-- {
		if !g.forbidden(words[k-1], words[k]) {
			return k
		}
	}
	return 0
}
