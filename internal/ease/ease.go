// Package ease provides easing curves for timeline actions.
//
// An easing function remaps the normalized progress t in [0, 1] before it is
// handed to an interpolation function. All curves satisfy f(0) = 0 and
// f(1) = 1; Back and Elastic overshoot in between.
package ease

import (
	"math"
	"sort"
	"strings"
)

// Func remaps normalized progress.
type Func func(t float32) float32

// Linear is the identity easing.
func Linear(t float32) float32 { return t }

const (
	backC1    = 1.70158
	backC2    = backC1 * 1.525
	backC3    = backC1 + 1
	elasticC4 = (2 * math.Pi) / 3
	elasticC5 = (2 * math.Pi) / 4.5
)

func f32(v float64) float32 { return float32(v) }

// SineIn eases in along a sinusoidal curve.
func SineIn(t float32) float32 { return f32(1 - math.Cos(float64(t)*math.Pi/2)) }

// SineOut eases out along a sinusoidal curve.
func SineOut(t float32) float32 { return f32(math.Sin(float64(t) * math.Pi / 2)) }

// SineInOut eases in and out along a sinusoidal curve.
func SineInOut(t float32) float32 {
	return f32(-(math.Cos(math.Pi*float64(t)) - 1) / 2)
}

// QuadIn eases in along a quadratic curve.
func QuadIn(t float32) float32 { return powIn(t, 2) }

// QuadOut eases out along a quadratic curve.
func QuadOut(t float32) float32 { return powOut(t, 2) }

// QuadInOut eases in and out along a quadratic curve.
func QuadInOut(t float32) float32 { return powInOut(t, 2) }

// CubicIn eases in along a cubic curve.
func CubicIn(t float32) float32 { return powIn(t, 3) }

// CubicOut eases out along a cubic curve.
func CubicOut(t float32) float32 { return powOut(t, 3) }

// CubicInOut eases in and out along a cubic curve.
func CubicInOut(t float32) float32 { return powInOut(t, 3) }

// QuartIn eases in along a quartic curve.
func QuartIn(t float32) float32 { return powIn(t, 4) }

// QuartOut eases out along a quartic curve.
func QuartOut(t float32) float32 { return powOut(t, 4) }

// QuartInOut eases in and out along a quartic curve.
func QuartInOut(t float32) float32 { return powInOut(t, 4) }

// QuintIn eases in along a quintic curve.
func QuintIn(t float32) float32 { return powIn(t, 5) }

// QuintOut eases out along a quintic curve.
func QuintOut(t float32) float32 { return powOut(t, 5) }

// QuintInOut eases in and out along a quintic curve.
func QuintInOut(t float32) float32 { return powInOut(t, 5) }

func powIn(t float32, n float64) float32 {
	return f32(math.Pow(float64(t), n))
}

func powOut(t float32, n float64) float32 {
	return f32(1 - math.Pow(1-float64(t), n))
}

func powInOut(t float32, n float64) float32 {
	x := float64(t)
	if x < 0.5 {
		return f32(math.Pow(2, n-1) * math.Pow(x, n))
	}
	return f32(1 - math.Pow(-2*x+2, n)/2)
}

// ExpoIn eases in along a exponential curve.
func ExpoIn(t float32) float32 {
	if t <= 0 {
		return 0
	}
	return f32(math.Pow(2, 10*float64(t)-10))
}

// ExpoOut eases out along a exponential curve.
func ExpoOut(t float32) float32 {
	if t >= 1 {
		return 1
	}
	return f32(1 - math.Pow(2, -10*float64(t)))
}

// ExpoInOut eases in and out along a exponential curve.
func ExpoInOut(t float32) float32 {
	x := float64(t)
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	case x < 0.5:
		return f32(math.Pow(2, 20*x-10) / 2)
	default:
		return f32((2 - math.Pow(2, -20*x+10)) / 2)
	}
}

// CircIn eases in along a circular curve.
func CircIn(t float32) float32 {
	x := float64(t)
	return f32(1 - math.Sqrt(1-x*x))
}

// CircOut eases out along a circular curve.
func CircOut(t float32) float32 {
	x := float64(t) - 1
	return f32(math.Sqrt(1 - x*x))
}

// CircInOut eases in and out along a circular curve.
func CircInOut(t float32) float32 {
	x := float64(t)
	if x < 0.5 {
		return f32((1 - math.Sqrt(1-math.Pow(2*x, 2))) / 2)
	}
	return f32((math.Sqrt(1-math.Pow(-2*x+2, 2)) + 1) / 2)
}

// BackIn pulls back below 0 before accelerating to 1.
func BackIn(t float32) float32 {
	x := float64(t)
	return f32(backC3*x*x*x - backC1*x*x)
}

// BackOut overshoots past 1 before settling.
func BackOut(t float32) float32 {
	x := float64(t) - 1
	return f32(1 + backC3*x*x*x + backC1*x*x)
}

// BackInOut pulls back at the start and overshoots at the end.
func BackInOut(t float32) float32 {
	x := float64(t)
	if x < 0.5 {
		return f32((math.Pow(2*x, 2) * ((backC2+1)*2*x - backC2)) / 2)
	}
	return f32((math.Pow(2*x-2, 2)*((backC2+1)*(x*2-2)+backC2) + 2) / 2)
}

// ElasticIn oscillates with growing amplitude before reaching 1.
func ElasticIn(t float32) float32 {
	x := float64(t)
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	}
	return f32(-math.Pow(2, 10*x-10) * math.Sin((x*10-10.75)*elasticC4))
}

// ElasticOut snaps past 1 and oscillates back to rest.
func ElasticOut(t float32) float32 {
	x := float64(t)
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	}
	return f32(math.Pow(2, -10*x)*math.Sin((x*10-0.75)*elasticC4) + 1)
}

// ElasticInOut oscillates at both ends.
func ElasticInOut(t float32) float32 {
	x := float64(t)
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	case x < 0.5:
		return f32(-(math.Pow(2, 20*x-10) * math.Sin((20*x-11.125)*elasticC5)) / 2)
	default:
		return f32((math.Pow(2, -20*x+10)*math.Sin((20*x-11.125)*elasticC5))/2 + 1)
	}
}

var byName = map[string]Func{
	"linear":         Linear,
	"sine_in":        SineIn,
	"sine_out":       SineOut,
	"sine_in_out":    SineInOut,
	"quad_in":        QuadIn,
	"quad_out":       QuadOut,
	"quad_in_out":    QuadInOut,
	"cubic_in":       CubicIn,
	"cubic_out":      CubicOut,
	"cubic_in_out":   CubicInOut,
	"quart_in":       QuartIn,
	"quart_out":      QuartOut,
	"quart_in_out":   QuartInOut,
	"quint_in":       QuintIn,
	"quint_out":      QuintOut,
	"quint_in_out":   QuintInOut,
	"expo_in":        ExpoIn,
	"expo_out":       ExpoOut,
	"expo_in_out":    ExpoInOut,
	"circ_in":        CircIn,
	"circ_out":       CircOut,
	"circ_in_out":    CircInOut,
	"back_in":        BackIn,
	"back_out":       BackOut,
	"back_in_out":    BackInOut,
	"elastic_in":     ElasticIn,
	"elastic_out":    ElasticOut,
	"elastic_in_out": ElasticInOut,
}

// ByName resolves an easing by its snake_case name, e.g. "cubic_in_out".
// Lookup is case-insensitive and accepts '-' in place of '_'.
func ByName(name string) (Func, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	f, ok := byName[key]
	return f, ok
}

// Names returns every name accepted by ByName, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
