package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, 50.0, Lerp(0.0, 100.0, 0.5))
	assert.Equal(t, float32(2.5), Lerp(float32(0), float32(10), 0.25))
	assert.Equal(t, 0.0, Lerp(0.0, 100.0, 0))
	assert.Equal(t, 100.0, Lerp(0.0, 100.0, 1))

	// Unsigned values blend downward without wrapping.
	assert.Equal(t, uint8(50), Lerp(uint8(100), uint8(0), 0.5))
}

func TestStep(t *testing.T) {
	assert.False(t, Step(false, true, 0.99))
	assert.True(t, Step(false, true, 1))
	assert.Equal(t, "a", Step("a", "b", 0))
}

func TestDefault(t *testing.T) {
	f, ok := Default[float64]()
	require.True(t, ok)
	assert.Equal(t, 25.0, f(0, 100, 0.25))

	i, ok := Default[int]()
	require.True(t, ok)
	assert.Equal(t, 5, i(0, 10, 0.5))

	b, ok := Default[bool]()
	require.True(t, ok)
	assert.False(t, b(false, true, 0.5))
	assert.True(t, b(false, true, 1))

	v, ok := Default[Vec2]()
	require.True(t, ok)
	assert.Equal(t, Vec2{X: 5, Y: 10}, v(Vec2{}, Vec2{X: 10, Y: 20}, 0.5))

	_, ok = Default[struct{ A int }]()
	assert.False(t, ok)
}

type meters float64

type frames uint16

type layer int

type toggle bool

func TestDefault_NamedKinds(t *testing.T) {
	m, ok := Default[meters]()
	require.True(t, ok)
	assert.Equal(t, meters(2.5), m(0, 10, 0.25))

	f, ok := Default[frames]()
	require.True(t, ok)
	assert.Equal(t, frames(50), f(100, 0, 0.5))

	l, ok := Default[layer]()
	require.True(t, ok)
	assert.Equal(t, layer(-5), l(0, -10, 0.5))

	tg, ok := Default[toggle]()
	require.True(t, ok)
	assert.Equal(t, toggle(false), tg(false, true, 0.5))
	assert.Equal(t, toggle(true), tg(false, true, 1))
}

func TestVec(t *testing.T) {
	assert.Equal(t, Vec2{X: 4, Y: 6}, Vec2{X: 1, Y: 2}.Add(Vec2{X: 3, Y: 4}))
	assert.Equal(t, 5.0, Vec2{X: 3, Y: 4}.Len())
	assert.Equal(t, Vec2{X: 2, Y: 4}, Vec2{X: 1, Y: 2}.Scale(2))
	assert.Equal(t, Vec3{X: 1, Y: 1, Z: 1}, Vec3{}.Lerp(Vec3{X: 2, Y: 2, Z: 2}, 0.5))
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, Vec3{}.Add(Vec3{X: 1, Y: 2, Z: 3}))
}
