package scene

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/planets/render"
)

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (render.Color, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return render.Color{}, fmt.Errorf("colour %q: %w", s, ErrInvalidAppearance)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return render.Color{}, fmt.Errorf("colour %q: %w", s, ErrInvalidAppearance)
	}
	return render.Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}
