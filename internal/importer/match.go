package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/weddingledger/planner/internal/contributor"
)

// normalize lower-cases s, strips diacritics and collapses whitespace.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

func trim(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

// matcher resolves free-text names to contributors.
type matcher struct {
	names map[string]*contributor.Contributor
}

func newMatcher(contributors []*contributor.Contributor) *matcher {
	m := &matcher{names: make(map[string]*contributor.Contributor, len(contributors))}
	for _, c := range contributors {
		m.add(c)
	}

	return m
}

func (m *matcher) add(c *contributor.Contributor) {
	if key := normalize(c.Name); key != "" {
		m.names[key] = c
	}
}

// match returns the contributor whose name equals name, or failing that the
// one with the longest name contained in name as whole words.
func (m *matcher) match(name string) *contributor.Contributor {
	key := normalize(name)
	if key == "" {
		return nil
	}

	if c, ok := m.names[key]; ok {
		return c
	}

	var (
		best    *contributor.Contributor
		bestLen int
	)

	padded := " " + key + " "

	for candidate, c := range m.names {
		if len(candidate) <= bestLen || !strings.Contains(padded, " "+candidate+" ") {
			continue
		}

		best, bestLen = c, len(candidate)
	}

	return best
}
