package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#FF0000", "0 100% 50%"},
		{"#00ff00", "120 100% 50%"},
		{"0000FF", "240 100% 50%"},
		{"#FFFFFF", "0 0% 100%"},
		{"#000000", "0 0% 0%"},
		{"#808080", "0 0% 50%"},
		{"#D4A017", "43 80% 46%"},
		{"#121212", "0 0% 7%"},
		{" #F5F5F5 ", "0 0% 96%"},
		{"#FF00FF", "300 100% 50%"},
		{"#FFC0CB", "350 100% 88%"},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := HexToHSL(tt.hex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestHexToHSLRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "#FFF", "#GGGGGG", "#1234567", "red", "#-12345"} {
		_, err := HexToHSL(in)
		assert.ErrorIs(t, err, ErrInvalidHex, "input %q", in)
		assert.False(t, IsHex(in))
	}
}

func TestAdjustLightnessClamps(t *testing.T) {
	base := HSL{H: 10, S: 20, L: 96}

	assert.Equal(t, HSL{H: 10, S: 20, L: 100}, AdjustLightness(base, 10))
	assert.Equal(t, HSL{H: 10, S: 20, L: 66}, AdjustLightness(base, -30))
	assert.Equal(t, HSL{H: 10, S: 20, L: 0}, AdjustLightness(HSL{H: 10, S: 20, L: 5}, -30))
}

func TestParseHSLRoundTrip(t *testing.T) {
	c := HSL{H: 43, S: 80, L: 46}

	got, err := ParseHSL(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, got)

	for _, bad := range []string{"", "43 80%", "a 80% 46%", "43 x% 46%", "43 80% y%"} {
		_, err := ParseHSL(bad)
		assert.ErrorIs(t, err, ErrInvalidHSL, "input %q", bad)
	}
}

func TestDeriveDefaultPalette(t *testing.T) {
	p, err := Derive(DefaultColors)
	require.NoError(t, err)

	want := map[string]string{
		"--primary":                    "43 80% 46%",
		"--primary-foreground":         "0 0% 7%",
		"--accent":                     "43 80% 46%",
		"--accent-foreground":          "0 0% 7%",
		"--ring":                       "43 80% 46%",
		"--gold":                       "43 80% 46%",
		"--background":                 "0 0% 7%",
		"--foreground":                 "0 0% 96%",
		"--card":                       "0 0% 10%",
		"--card-foreground":            "0 0% 96%",
		"--secondary":                  "0 0% 16%",
		"--secondary-foreground":       "0 0% 96%",
		"--muted":                      "0 0% 15%",
		"--muted-foreground":           "0 0% 66%",
		"--border":                     "0 0% 26%",
		"--sidebar-background":         "0 0% 10%",
		"--sidebar-foreground":         "0 0% 96%",
		"--sidebar-primary":            "43 80% 46%",
		"--sidebar-primary-foreground": "0 0% 7%",
		"--sidebar-accent":             "0 0% 16%",
		"--sidebar-border":             "0 0% 26%",
		"--sidebar-ring":               "43 80% 46%",
	}

	assert.Equal(t, want, p.Map())
	assert.Len(t, p, len(VariableNames()))
}

func TestDerivePreservesVariableOrder(t *testing.T) {
	p, err := Derive(DefaultColors)
	require.NoError(t, err)

	names := make([]string, len(p))
	for i, v := range p {
		names[i] = v.Name
	}
	assert.Equal(t, VariableNames(), names)
}

func TestDeriveReportsOffendingColor(t *testing.T) {
	c := DefaultColors
	c.Background = "#12"

	_, err := Derive(c)
	require.ErrorIs(t, err, ErrInvalidHex)
	assert.Contains(t, err.Error(), "background_color")
}

func TestPaletteCSS(t *testing.T) {
	p := Palette{
		{Name: "--primary", Value: "0 100% 50%"},
		{Name: "--card", Value: "0 0% 10%"},
	}

	assert.Equal(t, ":root{--primary:0 100% 50%;--card:0 0% 10%;}", p.CSS())

	v, ok := p.Get("--card")
	assert.True(t, ok)
	assert.Equal(t, "0 0% 10%", v)

	_, ok = p.Get("--missing")
	assert.False(t, ok)
}

func TestDerivedCSSContainsEveryVariable(t *testing.T) {
	p, err := Derive(DefaultColors)
	require.NoError(t, err)

	css := p.CSS()
	for _, name := range VariableNames() {
		assert.True(t, strings.Contains(css, name+":"), "missing %s", name)
	}
}
