package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRegistry() *Registry {
	return &Registry{
		HookBaseURL: "https://github.com/acme/ui/blob/main/hooks/",
		Components: map[string]Component{
			"Button": {URL: "https://example.com/Button.tsx"},
			"Card": {
				URL:      "https://example.com/Card.tsx",
				Deps:     map[string]string{"tailwind-merge": "^2.0.0", "clsx": "^2.1.1"},
				Requires: []string{"Button"},
			},
			"Chart/LineChart": {URL: "https://example.com/LineChart.tsx"},
		},
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	reg := testRegistry()

	for _, name := range []string{"Button", "button", "BUTTON", "bUtToN"} {
		key, comp, ok := reg.Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, "Button", key, name)
		assert.Equal(t, "https://example.com/Button.tsx", comp.URL, name)
	}

	key, _, ok := reg.Lookup("chart/linechart")
	assert.True(t, ok)
	assert.Equal(t, "Chart/LineChart", key)
}

func TestLookup_NotFound(t *testing.T) {
	_, _, ok := testRegistry().Lookup("Buton")
	assert.False(t, ok)
}

func TestLookup_PrefersExactCase(t *testing.T) {
	reg := &Registry{Components: map[string]Component{
		"tabs": {URL: "lower"},
		"Tabs": {URL: "title"},
	}}

	_, comp, _ := reg.Lookup("tabs")
	assert.Equal(t, "lower", comp.URL)
	_, comp, _ = reg.Lookup("Tabs")
	assert.Equal(t, "title", comp.URL)
	// No exact match: the first key in sorted order wins.
	key, _, _ := reg.Lookup("TABS")
	assert.Equal(t, "Tabs", key)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"Button", "Card", "Chart/LineChart"}, testRegistry().Names())
}

func TestDepNames(t *testing.T) {
	_, card, _ := testRegistry().Lookup("Card")
	assert.Equal(t, []string{"clsx", "tailwind-merge"}, card.DepNames())
	assert.Empty(t, Component{}.DepNames())
}

func TestHookURL(t *testing.T) {
	assert.Equal(t,
		"https://github.com/acme/ui/blob/main/hooks/useToggle.ts",
		testRegistry().HookURL("useToggle", ".ts"))
}
