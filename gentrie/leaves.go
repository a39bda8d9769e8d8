package gentrie

import (
	"math/big"

	"github.com/aglyzov/go-gentrie/leaf/dense"
	"github.com/aglyzov/go-gentrie/leaf/ordered"
)

// Leaf shapes for indivisible key domains. Bounded domains (Byte,
// Rune) sit on a dense bitmap-fanout map; unbounded ones (Int64,
// BigInt) on a balanced ordered map. The split is a performance
// trade-off only, invisible to callers.
var (
	// Byte is the shape of byte keys.
	Byte Shape = denseShape{
		bits: 8,
		enc:  func(k Key) uint64 { return uint64(k.(byte)) },
		dec:  func(u uint64) Key { return byte(u) },
	}

	// Rune is the shape of rune keys. Keys must be valid Unicode
	// code points (non-negative).
	Rune Shape = denseShape{
		bits: 24,
		enc:  func(k Key) uint64 { return uint64(uint32(k.(rune))) },
		dec:  func(u uint64) Key { return rune(u) },
	}

	// Int64 is the shape of int64 keys.
	Int64 Shape = orderedShape{cmp: func(a, b interface{}) int {
		x, y := a.(int64), b.(int64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	}}

	// BigInt is the shape of *big.Int keys. Keys are compared by
	// value and must not be mutated while stored.
	BigInt Shape = orderedShape{cmp: func(a, b interface{}) int {
		return a.(*big.Int).Cmp(b.(*big.Int))
	}}
)

type denseShape struct {
	bits int
	enc  func(Key) uint64
	dec  func(uint64) Key
}

func (d denseShape) empty() node      { return dense.New(d.bits) }
func (d denseShape) null(n node) bool { return n.(dense.Map).IsEmpty() }

func (d denseShape) lookup(k Key, n node) (interface{}, bool) {
	return n.(dense.Map).Get(d.enc(k))
}

func (d denseShape) alter(k Key, f update, n node) node {
	return n.(dense.Map).Alter(d.enc(k), f)
}

func (d denseShape) mapMaybe(f filter, n node) node {
	return n.(dense.Map).MapMaybe(func(u uint64, val interface{}) (interface{}, bool) {
		return f(d.dec(u), val)
	})
}

func (d denseShape) merge(c combiner, only1, only2 transform, x, y node) node {
	return dense.MergeWithKey(
		func(u uint64, a, b interface{}) (interface{}, bool) { return c(d.dec(u), a, b) },
		func(m dense.Map) dense.Map { return only1(m).(dense.Map) },
		func(m dense.Map) dense.Map { return only2(m).(dense.Map) },
		x.(dense.Map), y.(dense.Map))
}

func (d denseShape) iterate(n node, h visitor) bool {
	return n.(dense.Map).Iter(func(u uint64, val interface{}) bool {
		return h(d.dec(u), val)
	})
}

type orderedShape struct {
	cmp ordered.Cmp
}

func (o orderedShape) empty() node      { return ordered.New(o.cmp) }
func (o orderedShape) null(n node) bool { return n.(ordered.Map).IsEmpty() }

func (o orderedShape) lookup(k Key, n node) (interface{}, bool) {
	return n.(ordered.Map).Get(k)
}

func (o orderedShape) alter(k Key, f update, n node) node {
	return n.(ordered.Map).Alter(k, f)
}

func (o orderedShape) mapMaybe(f filter, n node) node {
	return n.(ordered.Map).MapMaybe(func(k, val interface{}) (interface{}, bool) {
		return f(k, val)
	})
}

func (o orderedShape) merge(c combiner, only1, only2 transform, x, y node) node {
	return ordered.MergeWithKey(
		func(k, a, b interface{}) (interface{}, bool) { return c(k, a, b) },
		func(m ordered.Map) ordered.Map { return only1(m).(ordered.Map) },
		func(m ordered.Map) ordered.Map { return only2(m).(ordered.Map) },
		x.(ordered.Map), y.(ordered.Map))
}

func (o orderedShape) iterate(n node, h visitor) bool {
	return n.(ordered.Map).Iter(func(k, val interface{}) bool {
		return h(k, val)
	})
}
