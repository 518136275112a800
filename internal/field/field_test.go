package field

import (
	htmltemplate "html/template"
	"reflect"
	"testing"
	texttemplate "text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vec struct {
	X, Y float64
}

type node struct {
	Position vec
	Scale    float64
	Visible  bool
}

func TestField_UntypedEquality(t *testing.T) {
	a := New[node, float64](Join("position", "x"))
	b := New[node, float64](Join("position", "x"))

	assert.Equal(t, a.Untyped(), b.Untyped())

	set := map[UntypedField]int{a.Untyped(): 1}
	set[b.Untyped()]++
	assert.Len(t, set, 1, "equal fields must hash identically")
	assert.Equal(t, 2, set[a.Untyped()])
}

func TestField_DistinctPathsAreDistinct(t *testing.T) {
	x := New[node, float64](Join("position", "x"))
	y := New[node, float64](Join("position", "y"))
	scale := New[node, float64](Join("scale"))

	assert.NotEqual(t, x.Untyped(), y.Untyped())
	assert.NotEqual(t, x.Untyped(), scale.Untyped())
	assert.NotEqual(t, y.Untyped(), scale.Untyped())
}

func TestField_SamePathDifferentTypes(t *testing.T) {
	f64 := Untyped[node, float64]("::scale")
	f32 := Untyped[node, float32]("::scale")
	other := Untyped[vec, float64]("::scale")

	assert.NotEqual(t, f64, f32)
	assert.NotEqual(t, f64, other)
}

func TestField_Accessors(t *testing.T) {
	f := New[node, bool]("::visible")
	u := f.Untyped()

	assert.Equal(t, "::visible", f.Path())
	assert.Equal(t, "::visible", u.Path())
	assert.Equal(t, reflect.TypeFor[node](), u.Source())
	assert.Equal(t, reflect.TypeFor[bool](), u.Target())
	assert.False(t, u.IsZero())
	assert.True(t, UntypedField{}.IsZero())
}

func TestField_Typed(t *testing.T) {
	u := Untyped[node, float64]("::scale")

	f, ok := Typed[node, float64](u)
	require.True(t, ok)
	assert.Equal(t, "::scale", f.Path())

	_, ok = Typed[node, float32](u)
	assert.False(t, ok, "wrong target type must fail")

	_, ok = Typed[vec, float64](u)
	assert.False(t, ok, "wrong source type must fail")
}

func TestField_MustTypedPanics(t *testing.T) {
	u := Untyped[node, float64]("::scale")

	assert.NotPanics(t, func() { MustTyped[node, float64](u) })
	assert.Panics(t, func() { MustTyped[node, int](u) })
}

func TestField_TypedUnchecked(t *testing.T) {
	u := Untyped[node, float64]("::scale")
	f := TypedUnchecked[vec, int](u)
	assert.Equal(t, "::scale", f.Path())
	assert.NotEqual(t, u, f.Untyped())
}

func TestField_Join(t *testing.T) {
	assert.Equal(t, "", Join())
	assert.Equal(t, "::x", Join("x"))
	assert.Equal(t, "::position::x", Join("position", "x"))

	// "é" composed vs decomposed.
	assert.Equal(t, Join("café"), Join("café"))
}

func TestField_Placeholder(t *testing.T) {
	assert.Equal(t, PlaceholderPath, Placeholder("").Path())
	assert.Equal(t, "a", Placeholder("a").Path())
	assert.NotEqual(t, Placeholder("a"), Placeholder("b"))
	assert.True(t, Is[struct{}, struct{}](Placeholder("a")))
}

func TestField_Compare(t *testing.T) {
	a := Placeholder("a")
	b := Placeholder("b")

	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))

	// Different source types order before path.
	n := Untyped[node, float64]("a")
	v := Untyped[vec, float64]("a")
	assert.NotEqual(t, 0, n.Compare(v))
	assert.Equal(t, -n.Compare(v), v.Compare(n))
}

func TestCompareTypes(t *testing.T) {
	assert.Equal(t, 0, CompareTypes(nil, nil))
	assert.Equal(t, -1, CompareTypes(nil, reflect.TypeFor[int]()))
	assert.Equal(t, 1, CompareTypes(reflect.TypeFor[int](), nil))

	// "float64" < "int" by name.
	assert.Equal(t, -1, CompareTypes(reflect.TypeFor[float64](), reflect.TypeFor[int]()))
	assert.Equal(t, 1, CompareTypes(reflect.TypeFor[int](), reflect.TypeFor[float64]()))
}

func TestCompareTypes_SameNameOrdersByPackage(t *testing.T) {
	html := reflect.TypeFor[htmltemplate.Template]()
	text := reflect.TypeFor[texttemplate.Template]()
	require.Equal(t, html.String(), text.String())

	assert.Negative(t, CompareTypes(html, text))
	assert.Positive(t, CompareTypes(text, html))

	// Composites compare through their element types.
	assert.Negative(t, CompareTypes(reflect.TypeFor[[]*htmltemplate.Template](), reflect.TypeFor[[]*texttemplate.Template]()))
	assert.Positive(t, CompareTypes(reflect.TypeFor[map[string]texttemplate.Template](), reflect.TypeFor[map[string]htmltemplate.Template]()))
}

func TestField_String(t *testing.T) {
	u := Untyped[node, float64]("::scale")
	assert.Equal(t, "field.node::scale -> float64", u.String())
}
