package theme

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidHex = errors.New("invalid hex color")

var ErrInvalidHSL = errors.New("invalid hsl value")

// HSL holds a color with hue in degrees and saturation/lightness in percent,
// already rounded to integers.
type HSL struct {
	H int
	S int
	L int
}

// String renders the triplet the way CSS variables expect it: "H S% L%".
func (c HSL) String() string {
	return fmt.Sprintf("%d %d%% %d%%", c.H, c.S, c.L)
}

// HexToHSL converts "#RRGGBB" (or "RRGGBB") into HSL.
func HexToHSL(hex string) (HSL, error) {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return HSL{}, err
	}

	hi := max(r, g, b)
	lo := min(r, g, b)

	var h, s float64
	l := (hi + lo) / 2

	if hi != lo {
		d := hi - lo
		if l > 0.5 {
			s = d / (2 - hi - lo)
		} else {
			s = d / (hi + lo)
		}

		switch hi {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return HSL{
		H: roundHalfUp(h * 360),
		S: roundHalfUp(s * 100),
		L: roundHalfUp(l * 100),
	}, nil
}

// AdjustLightness shifts lightness by amount, clamped to [0,100].
func AdjustLightness(c HSL, amount int) HSL {
	c.L = clamp(c.L+amount, 0, 100)
	return c
}

// ParseHSL reads back the output of HSL.String.
func ParseHSL(s string) (HSL, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return HSL{}, ErrInvalidHSL
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return HSL{}, ErrInvalidHSL
	}
	sat, err := strconv.Atoi(strings.TrimSuffix(parts[1], "%"))
	if err != nil {
		return HSL{}, ErrInvalidHSL
	}
	l, err := strconv.Atoi(strings.TrimSuffix(parts[2], "%"))
	if err != nil {
		return HSL{}, ErrInvalidHSL
	}

	return HSL{H: h, S: sat, L: l}, nil
}

// IsHex reports whether s is a color HexToHSL accepts.
func IsHex(s string) bool {
	_, _, _, err := parseHex(s)
	return err == nil
}

func parseHex(hex string) (r, g, b float64, err error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	v, perr := strconv.ParseUint(hex, 16, 32)
	if perr != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	r = float64((v>>16)&0xff) / 255
	g = float64((v>>8)&0xff) / 255
	b = float64(v&0xff) / 255
	return r, g, b, nil
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
