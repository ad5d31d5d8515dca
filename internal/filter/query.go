package filter

import "strings"

// ParseQuery turns a search prompt into Options.
//
// Tokens are whitespace separated:
//
//	term        whitelist term
//	-term       blacklist term
//	col:name    restrict the whitelist scan to a property
//	-col:name   exclude a property from the whitelist scan
//	+all        require every whitelist term to match
//	+case       match case sensitively
//
// Double quotes group a term containing spaces: "new york".
func ParseQuery(query string) Options {
	var opts Options
	for _, tok := range tokenize(query) {
		switch {
		case tok == "+all":
			opts.WhitelistMatchAll = true
		case tok == "+case":
			opts.CaseSensitive = true
		case strings.HasPrefix(tok, "-col:"):
			if name := tok[len("-col:"):]; name != "" {
				opts.BlacklistProperties = append(opts.BlacklistProperties, name)
			}
		case strings.HasPrefix(tok, "col:"):
			if name := tok[len("col:"):]; name != "" {
				opts.WhitelistProperties = append(opts.WhitelistProperties, name)
			}
		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			opts.BlacklistTerms = append(opts.BlacklistTerms, tok[1:])
		default:
			opts.WhitelistTerms = append(opts.WhitelistTerms, tok)
		}
	}
	return opts
}

// tokenize splits on whitespace while honoring double quotes.
func tokenize(s string) []string {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
		case !quoted && (r == ' ' || r == '\t'):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// IsEmpty returns true if the options select every record.
func (o Options) IsEmpty() bool {
	for _, t := range o.WhitelistTerms {
		if strings.TrimSpace(t) != "" {
			return false
		}
	}
	for _, t := range o.BlacklistTerms {
		if strings.TrimSpace(t) != "" {
			return false
		}
	}
	return true
}
