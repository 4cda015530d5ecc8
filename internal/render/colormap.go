package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/fezrs/internal/errdefs"
)

// Colormap maps a scalar in [0,1] to a color by linear interpolation
// between stops.
type Colormap struct {
	name  string
	stops []stop
}

type stop struct {
	pos float64
	c   colorful.Color
}

// Name returns the colormap name, including any "_r" suffix.
func (m Colormap) Name() string { return m.name }

// At returns the color for t. Values outside [0,1] are clamped.
func (m Colormap) At(t float64) color.NRGBA {
	c := m.at(t)
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func (m Colormap) at(t float64) colorful.Color {
	if t <= m.stops[0].pos || math.IsNaN(t) {
		return m.stops[0].c
	}
	last := m.stops[len(m.stops)-1]
	if t >= last.pos {
		return last.c
	}
	i := sort.Search(len(m.stops), func(i int) bool { return m.stops[i].pos >= t })
	lo, hi := m.stops[i-1], m.stops[i]
	return lo.c.BlendRgb(hi.c, (t-lo.pos)/(hi.pos-lo.pos))
}

// reversed returns the colormap running from its last stop to its first.
func (m Colormap) reversed() Colormap {
	r := Colormap{name: m.name + "_r", stops: make([]stop, len(m.stops))}
	for i, s := range m.stops {
		r.stops[len(m.stops)-1-i] = stop{pos: 1 - s.pos, c: s.c}
	}
	return r
}

// evenly spaced stops from hex colors
func even(hexes ...string) []stop {
	out := make([]stop, len(hexes))
	for i, h := range hexes {
		out[i] = stop{pos: float64(i) / float64(len(hexes)-1), c: mustHex(h)}
	}
	return out
}

func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(fmt.Sprintf("render: bad color %q: %v", h, err))
	}
	return c
}

var colormaps = map[string][]stop{
	"viridis": even("#440154", "#482878", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"),
	"magma": even("#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f",
		"#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"),
	"inferno": even("#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60",
		"#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"),
	"plasma": even("#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
		"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"),
	"gray": even("#000000", "#ffffff"),
	"hot": {
		{0, mustHex("#0a0000")},
		{0.365, mustHex("#ff0000")},
		{0.746, mustHex("#ffff00")},
		{1, mustHex("#ffffff")},
	},
	"jet": {
		{0, mustHex("#00007f")},
		{0.125, mustHex("#0000ff")},
		{0.375, mustHex("#00ffff")},
		{0.625, mustHex("#ffff00")},
		{0.875, mustHex("#ff0000")},
		{1, mustHex("#7f0000")},
	},
}

// LookupColormap returns the named colormap. A "_r" suffix reverses it.
// Lookup is case-insensitive and "grey" is accepted for "gray".
func LookupColormap(name string) (Colormap, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	rev := strings.HasSuffix(key, "_r")
	key = strings.TrimSuffix(key, "_r")
	if key == "grey" {
		key = "gray"
	}
	stops, ok := colormaps[key]
	if !ok {
		return Colormap{}, fmt.Errorf("unknown colormap %q: %w", name, errdefs.ErrInvalidConfig)
	}
	m := Colormap{name: key, stops: stops}
	if rev {
		m = m.reversed()
	}
	return m, nil
}

// ColormapNames lists the base colormap names in sorted order.
func ColormapNames() []string {
	names := make([]string, 0, len(colormaps))
	for n := range colormaps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
