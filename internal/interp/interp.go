// Package interp holds the interpolation functions the timeline falls back to
// when an action has no custom one.
package interp

import (
	"math"
	"reflect"
)

// Func blends from start to end by progress t, where t = 0 yields start and
// t = 1 yields end.
type Func[T any] func(start, end T, t float32) T

// Number is any built-in numeric type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Lerper is implemented by value types that know how to blend toward another
// value of the same type.
type Lerper[T any] interface {
	Lerp(to T, t float32) T
}

// Lerp linearly interpolates numbers. Integer results are truncated.
func Lerp[N Number](a, b N, t float32) N {
	ft := float64(t)
	return N(float64(a)*(1-ft) + float64(b)*ft)
}

// Step holds start until t reaches 1, then jumps to end.
func Step[T any](a, b T, t float32) T {
	if t < 1 {
		return a
	}
	return b
}

// Default returns the built-in interpolation for T: Lerp for numbers, the
// type's own Lerp method for Lerper implementations and Step for bool and
// string. Named types fall back on their underlying kind. It returns false
// when T has no default.
func Default[T any]() (Func[T], bool) {
	var zero T
	var f any
	switch any(zero).(type) {
	case float64:
		f = Func[float64](Lerp[float64])
	case float32:
		f = Func[float32](Lerp[float32])
	case int:
		f = Func[int](Lerp[int])
	case int8:
		f = Func[int8](Lerp[int8])
	case int16:
		f = Func[int16](Lerp[int16])
	case int32:
		f = Func[int32](Lerp[int32])
	case int64:
		f = Func[int64](Lerp[int64])
	case uint:
		f = Func[uint](Lerp[uint])
	case uint8:
		f = Func[uint8](Lerp[uint8])
	case uint16:
		f = Func[uint16](Lerp[uint16])
	case uint32:
		f = Func[uint32](Lerp[uint32])
	case uint64:
		f = Func[uint64](Lerp[uint64])
	case bool:
		f = Func[bool](Step[bool])
	case string:
		f = Func[string](Step[string])
	case Lerper[T]:
		return func(a, b T, t float32) T {
			return any(a).(Lerper[T]).Lerp(b, t)
		}, true
	default:
		return byKind[T]()
	}
	return f.(Func[T]), true
}

// byKind covers named types whose underlying type is numeric, bool or
// string, e.g. `type meters float64`.
func byKind[T any]() (Func[T], bool) {
	rt := reflect.TypeFor[T]()
	switch rt.Kind() {
	case reflect.Float32, reflect.Float64:
		return func(a, b T, t float32) T {
			out := reflect.New(rt).Elem()
			out.SetFloat(Lerp(reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float(), t))
			return out.Interface().(T)
		}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b T, t float32) T {
			out := reflect.New(rt).Elem()
			v := Lerp(float64(reflect.ValueOf(a).Int()), float64(reflect.ValueOf(b).Int()), t)
			out.SetInt(int64(v))
			return out.Interface().(T)
		}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b T, t float32) T {
			out := reflect.New(rt).Elem()
			v := Lerp(float64(reflect.ValueOf(a).Uint()), float64(reflect.ValueOf(b).Uint()), t)
			out.SetUint(uint64(v))
			return out.Interface().(T)
		}, true
	case reflect.Bool, reflect.String:
		return Step[T], true
	default:
		return nil, false
	}
}

// Vec2 is a two component vector.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Lerp implements Lerper.
func (v Vec2) Lerp(to Vec2, t float32) Vec2 {
	return Vec2{X: Lerp(v.X, to.X, t), Y: Lerp(v.Y, to.Y, t)}
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Vec3 is a three component vector.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Lerp implements Lerper.
func (v Vec3) Lerp(to Vec3, t float32) Vec3 {
	return Vec3{X: Lerp(v.X, to.X, t), Y: Lerp(v.Y, to.Y, t), Z: Lerp(v.Z, to.Z, t)}
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}
