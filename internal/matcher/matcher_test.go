package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/sweeplabs/modsweep/internal/matcher"
	"go.uber.org/zap"
)

func newFilter(id uint64, filterType enum.FilterType, matchType enum.MatchType, pattern string, priority int) *types.Filter {
	return &types.Filter{
		ID:        id,
		Type:      filterType,
		Pattern:   pattern,
		MatchType: matchType,
		Action:    enum.FilterActionDelete,
		Priority:  priority,
		IsActive:  true,
	}
}

func TestFindMatch_PriorityOrder(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())

	low := newFilter(1, enum.FilterTypeKeyword, enum.MatchTypeContains, "spam", 1)
	high := newFilter(2, enum.FilterTypeKeyword, enum.MatchTypeContains, "sp", 5)

	match := m.FindMatch("this is spam", []*types.Filter{low, high})
	require.NotNil(t, match)
	assert.Equal(t, uint64(2), match.ID, "higher priority filter should win")
}

func TestFindMatch_StableTieBreak(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())

	first := newFilter(1, enum.FilterTypeKeyword, enum.MatchTypeContains, "spam", 3)
	second := newFilter(2, enum.FilterTypeKeyword, enum.MatchTypeContains, "sp", 3)

	match := m.FindMatch("this is spam", []*types.Filter{first, second})
	require.NotNil(t, match)
	assert.Equal(t, uint64(1), match.ID, "equal priority keeps original order")
}

func TestFindMatch_NoMatch(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())
	filter := newFilter(1, enum.FilterTypeKeyword, enum.MatchTypeContains, "spam", 1)

	assert.Nil(t, m.FindMatch("perfectly fine comment", []*types.Filter{filter}))
}

func TestFindMatch_MatchTypes(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())

	tests := []struct {
		name      string
		matchType enum.MatchType
		pattern   string
		text      string
		want      bool
	}{
		{"contains hit", enum.MatchTypeContains, "buy now", "BUY NOW limited offer", true},
		{"contains miss", enum.MatchTypeContains, "buy now", "nothing here", false},
		{"exact hit", enum.MatchTypeExact, "first", "first", true},
		{"exact miss on substring", enum.MatchTypeExact, "first", "first!", false},
		{"starts_with hit", enum.MatchTypeStartsWith, "check out", "check out my channel", true},
		{"starts_with miss", enum.MatchTypeStartsWith, "check out", "please check out", false},
		{"ends_with hit", enum.MatchTypeEndsWith, "subscribe", "like and subscribe", true},
		{"ends_with miss", enum.MatchTypeEndsWith, "subscribe", "subscribe today", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			filter := newFilter(1, enum.FilterTypeKeyword, tt.matchType, tt.pattern, 1)
			match := m.FindMatch(tt.text, []*types.Filter{filter})

			if tt.want {
				assert.NotNil(t, match)
			} else {
				assert.Nil(t, match)
			}
		})
	}
}

func TestFindMatch_CaseSensitivity(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())

	insensitive := newFilter(1, enum.FilterTypeKeyword, enum.MatchTypeContains, "spam", 1)
	assert.NotNil(t, m.FindMatch("SPAM alert", []*types.Filter{insensitive}))

	sensitive := newFilter(2, enum.FilterTypeKeyword, enum.MatchTypeContains, "spam", 1)
	sensitive.CaseSensitive = true
	assert.Nil(t, m.FindMatch("SPAM alert", []*types.Filter{sensitive}))
	assert.NotNil(t, m.FindMatch("spam alert", []*types.Filter{sensitive}))
}

func TestFindMatch_Regex(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())

	filter := newFilter(1, enum.FilterTypeRegex, enum.MatchTypeRegex, `fr[e3]{2}\s+v-?bucks`, 1)
	assert.NotNil(t, m.FindMatch("get FREE v-bucks here", []*types.Filter{filter}))
	assert.Nil(t, m.FindMatch("paid v-bucks", []*types.Filter{filter}))
}

func TestFindMatch_InvalidRegexNeverMatches(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())

	broken := newFilter(1, enum.FilterTypeRegex, enum.MatchTypeRegex, "[unclosed", 5)
	fallback := newFilter(2, enum.FilterTypeKeyword, enum.MatchTypeContains, "unclosed", 1)

	// The malformed pattern is skipped and the next filter still runs.
	match := m.FindMatch("[unclosed bracket", []*types.Filter{broken, fallback})
	require.NotNil(t, match)
	assert.Equal(t, uint64(2), match.ID)
}

func TestFindMatch_EmojiSpam(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())
	filter := newFilter(1, enum.FilterTypeEmojiSpam, enum.MatchTypeContains, "5", 1)

	assert.NotNil(t, m.FindMatch("🔥🔥🔥🔥🔥", []*types.Filter{filter}), "five emoji meets threshold")
	assert.Nil(t, m.FindMatch("🔥🔥🔥🔥", []*types.Filter{filter}), "four emoji is under threshold")
	assert.Nil(t, m.FindMatch("no emoji at all", []*types.Filter{filter}))
}

func TestFindMatch_RepeatChar(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())
	filter := newFilter(1, enum.FilterTypeRepeatChar, enum.MatchTypeContains, "6", 1)

	assert.NotNil(t, m.FindMatch("wooooooow", []*types.Filter{filter}))
	assert.Nil(t, m.FindMatch("wooow", []*types.Filter{filter}))
}

func TestFindMatch_InvalidThresholdNeverMatches(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())
	filter := newFilter(1, enum.FilterTypeEmojiSpam, enum.MatchTypeContains, "lots", 1)

	assert.Nil(t, m.FindMatch("🔥🔥🔥🔥🔥🔥", []*types.Filter{filter}))
}

func TestMatch_UsernameFilter(t *testing.T) {
	t.Parallel()

	m := matcher.New(zap.NewNop())
	filter := newFilter(1, enum.FilterTypeUsername, enum.MatchTypeContains, "bot", 1)

	match := m.Match(matcher.Subject{Text: "nice video", AuthorName: "spam_bot_42"}, []*types.Filter{filter})
	assert.NotNil(t, match, "username filter runs against the author name")

	match = m.Match(matcher.Subject{Text: "nice video", AuthorName: "regular_user"}, []*types.Filter{filter})
	assert.Nil(t, match)
}
