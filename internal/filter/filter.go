// Package filter implements whitelist/blacklist term search over records.
//
// Filtering runs in two stages. The whitelist stage keeps records where the
// whitelist terms are found inside the scanned properties; the blacklist
// stage then drops any surviving record that contains a blacklist term in
// any schema property. The blacklist stage is deliberately not limited by
// WhitelistProperties/BlacklistProperties.
package filter

import (
	"strings"

	"github.com/dshills/gridview/internal/record"
	"github.com/dshills/gridview/internal/schema"
)

// Options configures a search.
type Options struct {
	// WhitelistTerms keep records containing them.
	WhitelistTerms []string

	// BlacklistTerms drop records containing them.
	BlacklistTerms []string

	// WhitelistProperties limits the whitelist scan to these properties.
	WhitelistProperties []string

	// BlacklistProperties are removed from the whitelist scan.
	BlacklistProperties []string

	// WhitelistMatchAll requires every whitelist term to be found.
	WhitelistMatchAll bool

	// CaseSensitive disables case folding.
	CaseSensitive bool
}

// Result is the outcome of a search.
type Result struct {
	// Records is the filtered view, in input order.
	Records []*record.Record

	// TermsMatched lists whitelist terms that hit at least once.
	TermsMatched []string

	// TermsNotMatched lists whitelist terms that never hit.
	TermsNotMatched []string

	// PropertiesChecked is the whitelist scan scope.
	PropertiesChecked []string
}

// Apply filters records against the schema using opts.
func Apply(records []*record.Record, s *schema.Schema, opts Options) Result {
	whitelist := normalizeTerms(opts.WhitelistTerms, opts.CaseSensitive)
	blacklist := normalizeTerms(opts.BlacklistTerms, opts.CaseSensitive)
	scope := Scope(s, opts.WhitelistProperties, opts.BlacklistProperties)

	m := &matcher{
		caseSensitive: opts.CaseSensitive,
		hits:          make([]bool, len(whitelist)),
	}

	filtered := make([]*record.Record, 0, len(records))
	if len(whitelist) == 0 {
		filtered = append(filtered, records...)
	} else {
		for _, r := range records {
			var ok bool
			if opts.WhitelistMatchAll {
				ok = m.matchAll(r, scope, whitelist)
			} else {
				// Stops at the first hit, so only that term is counted
				// in TermsMatched for this record.
				ok = m.matchAny(r, scope, whitelist)
			}
			if ok {
				filtered = append(filtered, r)
			}
		}
	}

	if len(blacklist) > 0 {
		all := s.Properties()
		kept := filtered[:0]
		for _, r := range filtered {
			if !m.containsAny(r, all, blacklist) {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}

	res := Result{
		Records:           filtered,
		PropertiesChecked: scope,
	}
	for i, term := range whitelist {
		if m.hits[i] {
			res.TermsMatched = append(res.TermsMatched, term.raw)
		} else {
			res.TermsNotMatched = append(res.TermsNotMatched, term.raw)
		}
	}
	return res
}

// Scope computes the whitelist scan scope.
//
// Both lists given: whitelist minus blacklist. One given: that list alone.
// Neither: every schema property. Unknown names are ignored.
func Scope(s *schema.Schema, whitelist, blacklist []string) []string {
	switch {
	case len(whitelist) > 0 && len(blacklist) > 0:
		excluded := make(map[string]bool, len(blacklist))
		for _, p := range blacklist {
			excluded[p] = true
		}
		out := make([]string, 0, len(whitelist))
		for _, p := range whitelist {
			if !excluded[p] && s.Has(p) {
				out = append(out, p)
			}
		}
		return out
	case len(whitelist) > 0:
		return known(s, whitelist)
	case len(blacklist) > 0:
		return known(s, blacklist)
	default:
		return s.Properties()
	}
}

func known(s *schema.Schema, names []string) []string {
	out := make([]string, 0, len(names))
	for _, p := range names {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// term is a search term with its folded needle.
type term struct {
	raw    string
	needle string
}

// normalizeTerms drops blank terms and precomputes folded needles.
func normalizeTerms(terms []string, caseSensitive bool) []term {
	out := make([]term, 0, len(terms))
	for _, t := range terms {
		if strings.TrimSpace(t) == "" {
			continue
		}
		needle := t
		if !caseSensitive {
			needle = strings.ToLower(t)
		}
		out = append(out, term{raw: t, needle: needle})
	}
	return out
}

type matcher struct {
	caseSensitive bool
	hits          []bool
}

func (m *matcher) haystack(r *record.Record, property string) string {
	text := r.Text(property)
	if !m.caseSensitive {
		text = strings.ToLower(text)
	}
	return text
}

// matchAny accepts at the first property containing any term.
func (m *matcher) matchAny(r *record.Record, scope []string, terms []term) bool {
	for _, p := range scope {
		text := m.haystack(r, p)
		for i, t := range terms {
			if strings.Contains(text, t.needle) {
				m.hits[i] = true
				return true
			}
		}
	}
	return false
}

// matchAll accepts the instant the last outstanding term is found.
func (m *matcher) matchAll(r *record.Record, scope []string, terms []term) bool {
	outstanding := make([]bool, len(terms))
	for i := range outstanding {
		outstanding[i] = true
	}
	remaining := len(terms)

	for _, p := range scope {
		text := m.haystack(r, p)
		for i, t := range terms {
			if !outstanding[i] || !strings.Contains(text, t.needle) {
				continue
			}
			outstanding[i] = false
			m.hits[i] = true
			remaining--
			if remaining == 0 {
				return true
			}
		}
	}
	return false
}

// containsAny reports whether any property contains any term.
func (m *matcher) containsAny(r *record.Record, properties []string, terms []term) bool {
	for _, p := range properties {
		text := m.haystack(r, p)
		for _, t := range terms {
			if strings.Contains(text, t.needle) {
				return true
			}
		}
	}
	return false
}
