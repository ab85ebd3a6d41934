package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/language"
)

func TestRegistry_AllProfilesComplete(t *testing.T) {
	registry, err := language.NewRegistry()
	require.NoError(t, err)

	profiles := registry.All()
	require.NotEmpty(t, profiles)

	for _, p := range profiles {
		assert.NotEmpty(t, p.Greeting, "language %s: greeting", p.Code)
		assert.NotEmpty(t, p.Reprompt, "language %s: reprompt", p.Code)
		assert.NotEmpty(t, p.Prompt(domain.StageCollectingCommodity), "language %s", p.Code)
		assert.NotEmpty(t, p.Prompt(domain.StageConfirmingListing), "language %s", p.Code)
		assert.NotEmpty(t, p.Synonyms, "language %s: synonyms", p.Code)
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := language.MustRegistry()

	p, err := registry.Get("hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", p.Code)

	// Case and whitespace are forgiven.
	p, err = registry.Get(" EN ")
	require.NoError(t, err)
	assert.Equal(t, "en", p.Code)
}

func TestRegistry_GetUnsupported(t *testing.T) {
	registry := language.MustRegistry()

	_, err := registry.Get("xyz")
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

func TestProfile_ResolveCommodity(t *testing.T) {
	registry := language.MustRegistry()
	hindi, err := registry.Get("hi")
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
		resolved bool
	}{
		{"devanagari onion", "प्याज", "onion", true},
		{"transliterated onion", "pyaaz", "onion", true},
		{"embedded in phrase", "मेरे पास प्याज है", "onion", true},
		{"tomato", "टमाटर", "tomato", true},
		{"unknown passes through", "dragonfruit", "dragonfruit", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := hindi.ResolveCommodity(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.resolved, ok)
		})
	}
}

func TestProfile_ParseQuantity(t *testing.T) {
	registry := language.MustRegistry()
	english, err := registry.Get("en")
	require.NoError(t, err)
	hindi, err := registry.Get("hi")
	require.NoError(t, err)

	tests := []struct {
		name    string
		profile *language.Profile
		input   string
		want    float64
		ok      bool
	}{
		{"plain digits", english, "200", 200, true},
		{"digits with comma", english, "1,500", 1500, true},
		{"decimal", english, "2.5", 2.5, true},
		{"single word", english, "fifty", 50, true},
		{"hundreds", english, "two hundred", 200, true},
		{"composed", english, "two hundred fifty", 250, true},
		{"thousand", english, "three thousand", 3000, true},
		{"hindi word", hindi, "सौ", 100, true},
		{"hindi composed", hindi, "दो सौ पचास", 250, true},
		{"transliterated", hindi, "do sau", 200, true},
		{"garbage", english, "plenty", 0, false},
		{"empty", english, "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.profile.ParseQuantity(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
