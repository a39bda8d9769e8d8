// Package strmap binds Go string keys to a structural trie from the
// gentrie package. It is a facade in the mechanical sense: the string
// type is declared, once, as the recursive shape
//
//	str = Sum(Unit, Product(Field(Byte), Field(str)))
//
// (a string is either empty, or a first byte followed by the rest),
// keys are encoded into that structural form on the way in and
// decoded on the way out, and every operation forwards to the generic
// engine. No trie logic lives here.
//
// Iteration order is bytewise lexicographic with shorter prefixes
// first, i.e. the natural Go string order.
package strmap

import "github.com/aglyzov/go-gentrie/gentrie"

var shape gentrie.Shape

func init() {
	shape = gentrie.Sum(gentrie.Unit, gentrie.Product(
		gentrie.Field(gentrie.Byte),
		gentrie.Field(gentrie.Defer(func() gentrie.Shape { return shape })),
	))
}

// keyOf encodes a string as its structural list-of-bytes key.
func keyOf(s string) gentrie.Key {
	if len(s) == 0 {
		return gentrie.Left{Key: gentrie.UnitKey{}}
	}
	return gentrie.Right{Key: gentrie.Pair{Fst: s[0], Snd: keyOf(s[1:])}}
}

// stringOf decodes a structural key back into a string.
func stringOf(k gentrie.Key) string {
	var buf []byte
	for {
		tail, ok := k.(gentrie.Right)
		if !ok {
			return string(buf)
		}
		pair := tail.Key.(gentrie.Pair)
		buf = append(buf, pair.Fst.(byte))
		k = pair.Snd
	}
}

// Item is one key/value entry, as returned by Items.
type Item struct {
	Key string
	Val interface{}
}

// Map is a persistent string-keyed map. The zero Map is not usable,
// call New. Every operation returns a new Map and leaves its receiver
// untouched.
type Map struct {
	t gentrie.Map
}

func New() Map {
	return Map{gentrie.New(shape)}
}

func (m Map) IsEmpty() bool {
	return m.t.IsEmpty()
}

// Len returns the number of keys.
func (m Map) Len() int {
	return m.t.Len()
}

// Get returns a value associated with the key.
func (m Map) Get(key string) (interface{}, bool) {
	return m.t.Get(keyOf(key))
}

// Set returns a map with val associated with the key.
func (m Map) Set(key string, val interface{}) Map {
	return Map{m.t.Set(keyOf(key), val)}
}

// Del returns a map without the key.
func (m Map) Del(key string) Map {
	return Map{m.t.Del(keyOf(key))}
}

// Update rewrites the entry at key through f, which receives the
// current value (or nil, false) and returns the new value and whether
// the entry should be present.
func (m Map) Update(key string, f func(val interface{}, ok bool) (interface{}, bool)) Map {
	return Map{m.t.Update(keyOf(key), f)}
}

// Iter calls a handler for all keys in ascending order. It returns
// whether all keys were iterated. The handler can continue the
// process by returning true or abort with false.
func (m Map) Iter(h func(key string, val interface{}) bool) bool {
	return m.t.Iter(func(k gentrie.Key, val interface{}) bool {
		return h(stringOf(k), val)
	})
}

// Keys returns all keys in ascending order.
func (m Map) Keys() []string {
	var keys []string
	m.Iter(func(key string, _ interface{}) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Items returns all entries in ascending key order.
func (m Map) Items() []Item {
	var items []Item
	m.Iter(func(key string, val interface{}) bool {
		items = append(items, Item{key, val})
		return true
	})
	return items
}

// Equal reports whether two maps hold the same entries, comparing
// values with ==.
func (m Map) Equal(other Map) bool {
	return gentrie.Equal(m.t, other.t)
}

// Union combines two maps, keeping one-sided entries as they are and
// resolving clashes with f.
func Union(f func(key string, a, b interface{}) interface{}, x, y Map) Map {
	return Map{gentrie.Union(func(k gentrie.Key, a, b interface{}) interface{} {
		return f(stringOf(k), a, b)
	}, x.t, y.t)}
}
