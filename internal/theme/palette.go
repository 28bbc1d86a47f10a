package theme

import (
	"fmt"
	"strings"
)

// Colors are the four seed colors stored per barbershop.
type Colors struct {
	Primary    string `json:"primary_color"`
	Secondary  string `json:"secondary_color"`
	Background string `json:"background_color"`
	Text       string `json:"text_color"`
}

// DefaultColors seeds newly registered barbershops.
var DefaultColors = Colors{
	Primary:    "#D4A017",
	Secondary:  "#2A2A2A",
	Background: "#121212",
	Text:       "#F5F5F5",
}

type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Palette is an ordered list of CSS custom properties.
type Palette []Variable

type source int

const (
	srcPrimary source = iota
	srcSecondary
	srcBackground
	srcText
)

type rule struct {
	name   string
	from   source
	adjust int
}

var rules = []rule{
	{"--primary", srcPrimary, 0},
	{"--primary-foreground", srcBackground, 0},
	{"--accent", srcPrimary, 0},
	{"--accent-foreground", srcBackground, 0},
	{"--ring", srcPrimary, 0},
	{"--gold", srcPrimary, 0},
	{"--background", srcBackground, 0},
	{"--foreground", srcText, 0},
	{"--card", srcBackground, 3},
	{"--card-foreground", srcText, 0},
	{"--secondary", srcSecondary, 0},
	{"--secondary-foreground", srcText, 0},
	{"--muted", srcBackground, 8},
	{"--muted-foreground", srcText, -30},
	{"--border", srcSecondary, 10},
	{"--sidebar-background", srcBackground, 3},
	{"--sidebar-foreground", srcText, 0},
	{"--sidebar-primary", srcPrimary, 0},
	{"--sidebar-primary-foreground", srcBackground, 0},
	{"--sidebar-accent", srcSecondary, 0},
	{"--sidebar-border", srcSecondary, 10},
	{"--sidebar-ring", srcPrimary, 0},
}

// VariableNames lists every property Derive sets. A client without an active
// tenant removes exactly these to fall back to its stylesheet defaults.
func VariableNames() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.name
	}
	return out
}

// Derive builds the full palette from the four seed colors.
func Derive(c Colors) (Palette, error) {
	var seeds [4]HSL

	for src, hex := range [4]string{c.Primary, c.Secondary, c.Background, c.Text} {
		hsl, err := HexToHSL(hex)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source(src), err)
		}
		seeds[src] = hsl
	}

	p := make(Palette, 0, len(rules))
	for _, r := range rules {
		p = append(p, Variable{
			Name:  r.name,
			Value: AdjustLightness(seeds[r.from], r.adjust).String(),
		})
	}
	return p, nil
}

func (p Palette) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, v := range p {
		m[v.Name] = v.Value
	}
	return m
}

func (p Palette) Get(name string) (string, bool) {
	for _, v := range p {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// CSS renders the palette as a :root rule.
func (p Palette) CSS() string {
	var b strings.Builder
	b.WriteString(":root{")
	for _, v := range p {
		b.WriteString(v.Name)
		b.WriteByte(':')
		b.WriteString(v.Value)
		b.WriteByte(';')
	}
	b.WriteString("}")
	return b.String()
}

func (s source) String() string {
	switch s {
	case srcPrimary:
		return "primary_color"
	case srcSecondary:
		return "secondary_color"
	case srcBackground:
		return "background_color"
	default:
		return "text_color"
	}
}
