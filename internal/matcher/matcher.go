package matcher

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"go.uber.org/zap"
)

// Subject is the material a filter is evaluated against.
type Subject struct {
	Text       string
	AuthorName string
}

// Matcher evaluates comment text against user filters. Evaluation has no
// side effects; the only internal state is a compiled-regex cache.
type Matcher struct {
	mu       sync.RWMutex
	compiled map[string]*regexp.Regexp
	invalid  map[string]struct{}
	logger   *zap.Logger
}

// New creates a new filter matcher.
func New(logger *zap.Logger) *Matcher {
	return &Matcher{
		compiled: make(map[string]*regexp.Regexp),
		invalid:  make(map[string]struct{}),
		logger:   logger.Named("matcher"),
	}
}

// FindMatch returns the first filter matching the text, checking filters by
// descending priority with the original order breaking ties. Returns nil when
// nothing matches.
func (m *Matcher) FindMatch(text string, filters []*types.Filter) *types.Filter {
	return m.Match(Subject{Text: text}, filters)
}

// Match is FindMatch with a full subject; username filters run against the
// author name when one is provided.
func (m *Matcher) Match(subject Subject, filters []*types.Filter) *types.Filter {
	ordered := make([]*types.Filter, len(filters))
	copy(ordered, filters)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	for _, filter := range ordered {
		if m.matches(subject, filter) {
			return filter
		}
	}

	return nil
}

// matches evaluates one filter's predicate. A malformed pattern never
// matches; one bad filter must not break a whole scan.
func (m *Matcher) matches(subject Subject, filter *types.Filter) bool {
	text := subject.Text
	if filter.Type == enum.FilterTypeUsername && subject.AuthorName != "" {
		text = subject.AuthorName
	}

	switch filter.Type {
	case enum.FilterTypeEmojiSpam:
		threshold, ok := m.threshold(filter)
		return ok && countEmoji(text) >= threshold
	case enum.FilterTypeRepeatChar:
		threshold, ok := m.threshold(filter)
		return ok && maxRepeatRun(text) >= threshold
	case enum.FilterTypeRegex:
		return m.matchRegex(text, filter)
	case enum.FilterTypeKeyword, enum.FilterTypePhrase, enum.FilterTypeUsername, enum.FilterTypeURL:
		if filter.MatchType == enum.MatchTypeRegex {
			return m.matchRegex(text, filter)
		}

		return matchLiteral(text, filter)
	}

	return false
}

// matchLiteral applies the non-regex match types.
func matchLiteral(text string, filter *types.Filter) bool {
	pattern := filter.Pattern
	if !filter.CaseSensitive {
		text = strings.ToLower(text)
		pattern = strings.ToLower(pattern)
	}

	switch filter.MatchType {
	case enum.MatchTypeExact:
		return text == pattern
	case enum.MatchTypeContains:
		return strings.Contains(text, pattern)
	case enum.MatchTypeStartsWith:
		return strings.HasPrefix(text, pattern)
	case enum.MatchTypeEndsWith:
		return strings.HasSuffix(text, pattern)
	case enum.MatchTypeRegex:
	}

	return false
}

// matchRegex compiles (through the cache) and applies a regex pattern.
func (m *Matcher) matchRegex(text string, filter *types.Filter) bool {
	pattern := filter.Pattern
	if !filter.CaseSensitive {
		pattern = "(?i)" + pattern
	}

	re := m.compile(pattern)
	if re == nil {
		return false
	}

	return re.MatchString(text)
}

// compile returns the compiled pattern or nil for patterns that failed
// compilation before. Failures are logged once per pattern.
func (m *Matcher) compile(pattern string) *regexp.Regexp {
	m.mu.RLock()
	re, ok := m.compiled[pattern]

	if _, failed := m.invalid[pattern]; failed {
		m.mu.RUnlock()
		return nil
	}
	m.mu.RUnlock()

	if ok {
		return re
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if re, ok = m.compiled[pattern]; ok {
		return re
	}

	if _, failed := m.invalid[pattern]; failed {
		return nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		m.invalid[pattern] = struct{}{}
		m.logger.Warn("Invalid filter regex treated as non-matching",
			zap.String("pattern", pattern),
			zap.Error(err))

		return nil
	}

	m.compiled[pattern] = re

	return re
}

// threshold parses the numeric threshold stored in the pattern field of
// emoji_spam and repeat_char filters.
func (m *Matcher) threshold(filter *types.Filter) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(filter.Pattern))
	if err != nil || value <= 0 {
		m.logger.Warn("Invalid filter threshold treated as non-matching",
			zap.Uint64("filterID", filter.ID),
			zap.String("pattern", filter.Pattern))

		return 0, false
	}

	return value, true
}

// maxRepeatRun returns the longest run of one rune repeated consecutively.
func maxRepeatRun(text string) int {
	var last rune

	longest, run := 0, 0

	for _, r := range text {
		if r == last {
			run++
		} else {
			last = r
			run = 1
		}

		if run > longest {
			longest = run
		}
	}

	return longest
}
