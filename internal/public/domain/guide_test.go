package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpokenLanguages(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected []string
	}{
		{name: "string slice", raw: []string{"English", "Hindi"}, expected: []string{"English", "Hindi"}},
		{name: "any slice", raw: []any{"Nepali", "Tibetan"}, expected: []string{"Nepali", "Tibetan"}},
		{name: "comma string with spaces", raw: "English, Hindi", expected: []string{"English", "Hindi"}},
		{name: "single language string", raw: "English", expected: []string{"English"}},
		{name: "nil", raw: nil, expected: []string{}},
		{name: "unexpected type", raw: 42, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guide := Guide{Languages: tt.raw}
			require.Equal(t, tt.expected, guide.SpokenLanguages())
		})
	}
}

func TestPriceValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected float64
	}{
		{name: "float64", raw: 65.5, expected: 65.5},
		{name: "int", raw: 50, expected: 50},
		{name: "int32", raw: int32(40), expected: 40},
		{name: "int64", raw: int64(70), expected: 70},
		{name: "numeric string", raw: "50", expected: 50},
		{name: "numeric string with spaces", raw: " 80 ", expected: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guide := Guide{Price: tt.raw}
			require.Equal(t, tt.expected, guide.PriceValue())
		})
	}

	t.Run("non numeric values coerce to NaN", func(t *testing.T) {
		for _, raw := range []any{"abc", nil, []string{"50"}} {
			guide := Guide{Price: raw}
			require.True(t, math.IsNaN(guide.PriceValue()))
		}
	})
}

func TestMatchGuides(t *testing.T) {
	pool := []Guide{
		{Name: "Tashi Dorje", Languages: "English, Hindi", Price: "50"},
		{Name: "Lhamo Doma", Languages: []any{"Hindi", "Nepali"}, Price: 65},
		{Name: "Karma Wangchuk", Languages: []any{"English", "Tibetan"}, Price: 80.0},
		{Name: "Broken Price", Languages: []any{"English"}, Price: "abc"},
	}

	t.Run("filters by language and budget inclusive", func(t *testing.T) {
		matched := MatchGuides(pool, Preference{Language: "English", Budget: 50})
		require.Len(t, matched, 1)
		require.Equal(t, "Tashi Dorje", matched[0].Name)
	})

	t.Run("legacy string fields participate", func(t *testing.T) {
		matched := MatchGuides(pool, Preference{Language: "Hindi", Budget: 60})
		require.Len(t, matched, 1)
		require.Equal(t, "Tashi Dorje", matched[0].Name)
	})

	t.Run("budget covers multiple guides in pool order", func(t *testing.T) {
		matched := MatchGuides(pool, Preference{Language: "English", Budget: 100})
		require.Len(t, matched, 2)
		require.Equal(t, "Tashi Dorje", matched[0].Name)
		require.Equal(t, "Karma Wangchuk", matched[1].Name)
	})

	t.Run("language match is exact and case sensitive", func(t *testing.T) {
		matched := MatchGuides(pool, Preference{Language: "english", Budget: 100})
		require.Empty(t, matched)
	})

	t.Run("non numeric price never matches", func(t *testing.T) {
		matched := MatchGuides(pool, Preference{Language: "English", Budget: math.Inf(1)})
		for _, guide := range matched {
			require.NotEqual(t, "Broken Price", guide.Name)
		}
	})

	t.Run("no guides yields empty non-nil slice", func(t *testing.T) {
		matched := MatchGuides(nil, Preference{Language: "English", Budget: 100})
		require.NotNil(t, matched)
		require.Empty(t, matched)
	})

	t.Run("input is not mutated and repeated calls agree", func(t *testing.T) {
		before := append([]Guide(nil), pool...)
		first := MatchGuides(pool, Preference{Language: "English", Budget: 100})
		second := MatchGuides(pool, Preference{Language: "English", Budget: 100})
		require.Equal(t, before, pool)
		require.Equal(t, first, second)
	})
}
