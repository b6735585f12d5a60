package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandscope/brandscope/internal/domain"
)

func TestNewAliasMatcher_Validation(t *testing.T) {
	tests := []struct {
		name    string
		dict    domain.BrandDictionary
		wantErr bool
	}{
		{
			name:    "rejects empty dictionary",
			dict:    domain.BrandDictionary{},
			wantErr: true,
		},
		{
			name:    "rejects brand without aliases",
			dict:    domain.BrandDictionary{"Roborock": {}},
			wantErr: true,
		},
		{
			name:    "rejects empty alias",
			dict:    domain.BrandDictionary{"Roborock": {"roborock", "  "}},
			wantErr: true,
		},
		{
			name:    "accepts valid dictionary",
			dict:    domain.BrandDictionary{"Roborock": {"roborock", "石头科技"}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher, err := NewAliasMatcher(tt.dict)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, matcher)
		})
	}
}

func TestAliasMatcher_Match(t *testing.T) {
	dict := domain.BrandDictionary{
		"Roborock": {"roborock", "石头科技"},
		"Xiaomi":   {"xiaomi", "小米"},
		"Dyson":    {"dyson"},
	}
	matcher, err := NewAliasMatcher(dict)
	require.NoError(t, err)

	tests := []struct {
		name          string
		text          string
		wantBrands    map[string]BrandMention
		absentBrands  []string
	}{
		{
			name: "case-insensitive alias match with position and count",
			text: "I think Roborock is great. ROBOROCK wins again.",
			wantBrands: map[string]BrandMention{
				"Roborock": {FirstPosition: 8, Count: 2},
			},
			absentBrands: []string{"Xiaomi", "Dyson"},
		},
		{
			name: "CJK alias maps to canonical brand",
			text: "石头科技的产品不错",
			wantBrands: map[string]BrandMention{
				"Roborock": {FirstPosition: 0, Count: 1},
			},
		},
		{
			name: "multiple aliases of one brand sum their counts",
			text: "roborock 和 石头科技 是同一家公司",
			wantBrands: map[string]BrandMention{
				"Roborock": {FirstPosition: 0, Count: 2},
			},
		},
		{
			name: "minimum offset wins as first position",
			text: "小米 launched before xiaomi did",
			wantBrands: map[string]BrandMention{
				"Xiaomi": {FirstPosition: 0, Count: 2},
			},
		},
		{
			name:         "empty text yields empty map",
			text:         "",
			wantBrands:   map[string]BrandMention{},
			absentBrands: []string{"Roborock", "Xiaomi", "Dyson"},
		},
		{
			name:         "unmentioned brands are absent, not zero-valued",
			text:         "dyson only",
			absentBrands: []string{"Roborock", "Xiaomi"},
			wantBrands: map[string]BrandMention{
				"Dyson": {FirstPosition: 0, Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matcher.Match(tt.text)

			for brand, want := range tt.wantBrands {
				require.Contains(t, got, brand)
				assert.Equal(t, want.FirstPosition, got[brand].FirstPosition, "first position for %s", brand)
				assert.Equal(t, want.Count, got[brand].Count, "count for %s", brand)
			}
			for _, brand := range tt.absentBrands {
				assert.NotContains(t, got, brand)
			}
		})
	}
}

func TestAliasMatcher_NonOverlappingOccurrences(t *testing.T) {
	// "aaaa" contains two non-overlapping "aa", not three.
	assert.Equal(t, []int{0, 2}, nonOverlappingOccurrences("aaaa", "aa"))
	assert.Nil(t, nonOverlappingOccurrences("abc", "zz"))
	assert.Nil(t, nonOverlappingOccurrences("abc", ""))
}

func TestAliasMatcher_ContainsBrand(t *testing.T) {
	matcher, err := NewAliasMatcher(domain.BrandDictionary{
		"Roborock": {"roborock", "石头科技"},
	})
	require.NoError(t, err)

	assert.True(t, matcher.ContainsBrand("Roborock", "The ROBOROCK S8 is solid"))
	assert.True(t, matcher.ContainsBrand("Roborock", "石头科技表现很好"))
	assert.False(t, matcher.ContainsBrand("Roborock", "Dyson leads the pack"))
	assert.False(t, matcher.ContainsBrand("Unknown", "roborock"))
}

func TestAliasMatcher_OrderIsDeterministic(t *testing.T) {
	matcher, err := NewAliasMatcher(domain.BrandDictionary{
		"Zephyr": {"zephyr"},
		"Anchor": {"anchor"},
		"Mist":   {"mist"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Anchor", "Mist", "Zephyr"}, matcher.Order())
}
