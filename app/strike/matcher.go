package strike

import (
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KeywordSet matches case-insensitive substrings. The underlying automaton
// keeps per-call scratch state, so Matches is serialized with a mutex.
type KeywordSet struct {
	keywords []string
	matcher  *ahocorasick.Matcher
	mu       sync.Mutex
}

func NewKeywordSet(keywords []string) *KeywordSet {
	set := &KeywordSet{}
	seen := make(map[string]bool, len(keywords))

	for _, kw := range keywords {
		normalized := normalizeKeyword(kw)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		set.keywords = append(set.keywords, normalized)
	}

	if len(set.keywords) > 0 {
		set.matcher = ahocorasick.NewStringMatcher(set.keywords)
	}

	return set
}

func (k *KeywordSet) Matches(text string) bool {
	if k == nil || k.matcher == nil || text == "" {
		return false
	}

	lowered := []byte(lower(text))

	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.matcher.Match(lowered)) > 0
}

func (k *KeywordSet) Keywords() []string {
	if k == nil {
		return nil
	}
	out := make([]string, len(k.keywords))
	copy(out, k.keywords)
	return out
}

func (k *KeywordSet) Len() int {
	if k == nil {
		return 0
	}
	return len(k.keywords)
}

// MatchesAny builds a one-off set; reuse a KeywordSet when matching many texts.
func MatchesAny(text string, keywords []string) bool {
	return NewKeywordSet(keywords).Matches(text)
}

// ParseKeywordList splits a comma-separated list, dropping blank entries.
func ParseKeywordList(raw string) []string {
	keywords := []string{}
	for _, part := range strings.Split(raw, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func normalizeKeyword(kw string) string {
	return lower(strings.TrimSpace(kw))
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
