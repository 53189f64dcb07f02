package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"shopbot/internal/domain"
)

var reBracket = regexp.MustCompile(`\[(.*?)\]`)

// BracketArgs returns the contents of every [...] pair in order.
func BracketArgs(s string) []string {
	matches := reBracket.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// MessageRef validates an archive message id.
func MessageRef(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PhotoRef validates an optional photo message id and returns it normalized.
func PhotoRef(s string) (string, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatInt(n, 10), true
}

// UserID validates a messaging user id.
func UserID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// Name trims a catalog label and rejects empty ones.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Links parses space separated "ozon:URL wb:URL ym:URL" tokens.
// Unknown prefixes are skipped; a later token for the same market wins.
func Links(s string) map[domain.Marketplace]string {
	out := make(map[domain.Marketplace]string, len(domain.Marketplaces))
	for _, tok := range strings.Fields(s) {
		prefix, rest, ok := strings.Cut(tok, ":")
		if !ok {
			continue
		}
		for _, m := range domain.Marketplaces {
			if prefix == string(m) {
				out[m] = rest
			}
		}
	}
	return out
}

// Query validates a search term: trimmed, 1 to 64 characters, no control characters.
func Query(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 64 {
		return "", false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", false
		}
	}
	return s, true
}
