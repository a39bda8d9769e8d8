package gentrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idMap(m Map) Map { return m }

func addInts(_ Key, a, b interface{}) (interface{}, bool) {
	return a.(int) + b.(int), true
}

func TestMergeWithKey_Identity(t *testing.T) {
	t.Parallel()

	shape := Product(Sum(Unit, Field(Byte)), Field(Byte))

	m := New(shape)
	m = m.Set(Pair{Left{UnitKey{}}, byte(1)}, 1)
	m = m.Set(Pair{Right{byte(2)}, byte(3)}, 2)
	m = m.Set(Pair{Right{byte(2)}, byte(4)}, 3)

	left := MergeWithKey(addInts, idMap, idMap, m, New(shape))
	right := MergeWithKey(addInts, idMap, idMap, New(shape), m)

	assert.True(t, Equal(left, m))
	assert.True(t, Equal(right, m))
}

func TestMergeWithKey_Combine(t *testing.T) {
	t.Parallel()

	shape := Product(Field(Byte), Field(Byte))
	common := Pair{byte(1), byte(1)}

	x := New(shape).Set(common, 10).Set(Pair{byte(1), byte(2)}, 20)
	y := New(shape).Set(common, 5).Set(Pair{byte(9), byte(9)}, 30)

	res := MergeWithKey(addInts, idMap, idMap, x, y)

	require.Equal(t, 3, res.Len())
	val, _ := res.Get(common)
	assert.Equal(t, 15, val)
	val, _ = res.Get(Pair{byte(1), byte(2)})
	assert.Equal(t, 20, val)
	val, _ = res.Get(Pair{byte(9), byte(9)})
	assert.Equal(t, 30, val)
}

// A combine that drops every common key must also drop outer entries
// whose middle sub-trie became empty.
func TestMergeWithKey_DropKeepsCanonical(t *testing.T) {
	t.Parallel()

	shape := Product(Field(Byte), Field(Byte))
	common := Pair{byte(1), byte(1)}

	x := New(shape).Set(common, 1)
	y := New(shape).Set(common, 2)

	drop := func(Key, interface{}, interface{}) (interface{}, bool) { return nil, false }
	res := MergeWithKey(drop, idMap, idMap, x, y)

	assert.True(t, res.IsEmpty())
	assert.True(t, Equal(res, New(shape)))
}

func TestMergeWithKey_OneSidedTransforms(t *testing.T) {
	t.Parallel()

	shape := Sum(Field(Byte), Field(Byte))

	x := New(shape).Set(Left{byte(1)}, 1).Set(Right{byte(2)}, 2)
	y := New(shape).Set(Left{byte(1)}, 10)

	negate := func(m Map) Map {
		return m.MapMaybe(func(_ Key, val interface{}) (interface{}, bool) {
			return -val.(int), true
		})
	}

	res := MergeWithKey(addInts, negate, negate, x, y)

	require.Equal(t, 2, res.Len())
	val, _ := res.Get(Left{byte(1)})
	assert.Equal(t, 11, val)
	// Right{2} existed only in x, so it went through the one-sided
	// transform
	val, _ = res.Get(Right{byte(2)})
	assert.Equal(t, -2, val)
}

func TestUnion(t *testing.T) {
	t.Parallel()

	shape := Sum(Unit, Field(Byte))

	x := New(shape).Set(Left{UnitKey{}}, 1).Set(Right{byte(5)}, 2)
	y := New(shape).Set(Right{byte(5)}, 40).Set(Right{byte(9)}, 3)

	res := Union(func(_ Key, a, b interface{}) interface{} {
		return a.(int) + b.(int)
	}, x, y)

	require.Equal(t, []Item{
		{Left{UnitKey{}}, 1},
		{Right{byte(5)}, 42},
		{Right{byte(9)}, 3},
	}, res.Items())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	shape := Product(Sum(Unit, Field(Byte)), Field(Byte))
	k1 := Pair{Left{UnitKey{}}, byte(1)}
	k2 := Pair{Right{byte(2)}, byte(3)}
	k3 := Pair{Right{byte(2)}, byte(4)}

	a := New(shape).Set(k1, "x").Set(k2, "y").Set(k3, "z")
	b := New(shape).Set(k3, "z").Set(k1, "x").Set(k2, "y") // other order

	// reflexive, symmetric, insertion-order independent
	assert.True(t, Equal(a, a))
	assert.True(t, Equal(a, b))
	assert.True(t, Equal(b, a))

	// value mismatch
	c := b.Set(k2, "Y")
	assert.False(t, Equal(a, c))

	// one-sided keys, both directions
	d := a.Del(k1)
	assert.False(t, Equal(a, d))
	assert.False(t, Equal(d, a))

	// deleting down to the same content restores equality
	assert.True(t, Equal(a.Del(k2), b.Del(k2)))

	// empty maps of one shape are equal
	assert.True(t, Equal(New(shape), New(shape)))
}

func TestEqualFunc(t *testing.T) {
	t.Parallel()

	a := New(Byte).Set(byte(1), []int{1, 2})
	b := New(Byte).Set(byte(1), []int{1, 2})

	sliceEq := func(x, y interface{}) bool {
		xs, ys := x.([]int), y.([]int)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if xs[i] != ys[i] {
				return false
			}
		}
		return true
	}

	assert.True(t, EqualFunc(sliceEq, a, b))
	assert.False(t, EqualFunc(sliceEq, a, b.Set(byte(1), []int{1})))
}

func TestMapMaybe_Product(t *testing.T) {
	t.Parallel()

	shape := Product(Field(Byte), Field(Byte))

	m := New(shape)
	m = m.Set(Pair{byte(1), byte(1)}, 1)
	m = m.Set(Pair{byte(1), byte(2)}, 2)
	m = m.Set(Pair{byte(2), byte(1)}, 3)

	// dropping every entry under outer key 1 must remove the outer
	// entry entirely
	res := m.MapMaybe(func(k Key, val interface{}) (interface{}, bool) {
		return val, k.(Pair).Fst.(byte) != 1
	})

	require.Equal(t, 1, res.Len())
	assert.True(t, Equal(res, New(shape).Set(Pair{byte(2), byte(1)}, 3)))

	none := m.MapMaybe(func(Key, interface{}) (interface{}, bool) { return nil, false })
	assert.True(t, none.IsEmpty())
}
