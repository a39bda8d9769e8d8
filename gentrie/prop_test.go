package gentrie

import (
	"sort"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// modelKey mirrors a key of the shape
// Product(Sum(Unit, Field(Byte)), Field(Byte)) as a flat comparable
// struct, so a plain Go map can act as the reference model. b1 is
// meaningful only when right is set.
type modelKey struct {
	right  bool
	b1, b2 byte
}

func (k modelKey) key() Key {
	outer := Key(Left{UnitKey{}})
	if k.right {
		outer = Right{k.b1}
	}
	return Pair{outer, k.b2}
}

func modelLess(a, b modelKey) bool {
	if a.right != b.right {
		return !a.right
	}
	if a.right && a.b1 != b.b1 {
		return a.b1 < b.b1
	}
	return a.b2 < b.b2
}

// Drives a nested Sum-of-Product shape through random updates and
// checks, against the model, that content, traversal order, emptiness
// and merge-based equality all stay consistent. This is the canonical
// emptiness check that cannot be read off the structure directly.
func TestRandomOps_AgainstModel(t *testing.T) {
	t.Parallel()

	const (
		seed  = 1234567890
		total = 5000
	)

	var (
		shape = Product(Sum(Unit, Field(Byte)), Field(Byte))
		m     = New(shape)
		model = map[modelKey]int{}
		fake  = gofakeit.New(seed)
	)

	for i := 0; i < total; i++ {
		k := modelKey{right: fake.Bool(), b2: byte(fake.Number(0, 15))}
		if k.right {
			k.b1 = byte(fake.Number(0, 15))
		}
		switch fake.Number(0, 2) {
		case 0, 1:
			m = m.Set(k.key(), i)
			model[k] = i
		default:
			m = m.Del(k.key())
			delete(model, k)
		}
		if m.IsEmpty() != (len(model) == 0) {
			t.Fatalf("step %d: IsEmpty=%v, model size %d", i, m.IsEmpty(), len(model))
		}
	}
	require.Equal(t, len(model), m.Len())

	exp := make([]modelKey, 0, len(model))
	for k := range model {
		exp = append(exp, k)
	}
	sort.Slice(exp, func(i, j int) bool { return modelLess(exp[i], exp[j]) })

	items := m.Items()
	require.Equal(t, len(exp), len(items))
	for i, k := range exp {
		assert.Equal(t, k.key(), items[i].Key, "position %d", i)
		assert.Equal(t, model[k], items[i].Val, "position %d", i)
	}

	// a fresh map rebuilt in a different insertion order must be
	// equal the merge-based way
	rebuilt := New(shape)
	for i := len(exp) - 1; i >= 0; i-- {
		rebuilt = rebuilt.Set(exp[i].key(), model[exp[i]])
	}
	assert.True(t, Equal(m, rebuilt))
	assert.True(t, Equal(rebuilt, m))

	// draining the map must land exactly on the canonical empty trie
	for k := range model {
		m = m.Del(k.key())
	}
	assert.True(t, m.IsEmpty())
	assert.True(t, Equal(m, New(shape)))
}

// Merge identity and union laws on randomized content.
func TestRandomMerge_Laws(t *testing.T) {
	t.Parallel()

	const seed = 42

	var (
		shape = Product(Sum(Unit, Field(Byte)), Field(Byte))
		x     = New(shape)
		y     = New(shape)
		fake  = gofakeit.New(seed)
	)

	for i := 0; i < 500; i++ {
		k := modelKey{right: fake.Bool(), b2: byte(fake.Number(0, 31))}
		if k.right {
			k.b1 = byte(fake.Number(0, 31))
		}
		if fake.Bool() {
			x = x.Set(k.key(), 1)
		} else {
			y = y.Set(k.key(), 1)
		}
	}

	assert.True(t, Equal(MergeWithKey(addInts, idMap, idMap, x, New(shape)), x))
	assert.True(t, Equal(MergeWithKey(addInts, idMap, idMap, New(shape), y), y))

	// union size: |x| + |y| - |common|
	common := 0
	x.Iter(func(k Key, _ interface{}) bool {
		if _, ok := y.Get(k); ok {
			common++
		}
		return true
	})
	u := Union(func(_ Key, a, b interface{}) interface{} {
		return a.(int) + b.(int)
	}, x, y)
	assert.Equal(t, x.Len()+y.Len()-common, u.Len())

	// every common key carries the combined value
	u.Iter(func(k Key, val interface{}) bool {
		_, inX := x.Get(k)
		_, inY := y.Get(k)
		if inX && inY {
			assert.Equal(t, 2, val)
		} else {
			assert.Equal(t, 1, val)
		}
		return true
	})
}
