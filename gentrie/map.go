package gentrie

// Map is a persistent trie bound to a Shape. The zero Map is not
// usable, call New. Map values are cheap to copy; every operation
// returns a new Map sharing untouched substructure with its receiver,
// so older versions stay valid and can be read concurrently.
type Map struct {
	shape Shape
	root  node
}

// New returns an empty map for keys of the given shape.
func New(shape Shape) Map {
	return Map{shape, shape.empty()}
}

// Shape returns the shape the map was built with.
func (m Map) Shape() Shape {
	return m.shape
}

// IsEmpty reports whether the map has no entries. Cost is bounded by
// the shape depth, not the entry count.
func (m Map) IsEmpty() bool {
	return m.shape.null(m.root)
}

// Len returns the number of entries, by traversal.
func (m Map) Len() int {
	n := 0
	m.shape.iterate(m.root, func(Key, interface{}) bool {
		n++
		return true
	})
	return n
}

// Get returns the value stored at k.
func (m Map) Get(k Key) (interface{}, bool) {
	return m.shape.lookup(k, m.root)
}

// Set returns a map with v stored at k.
func (m Map) Set(k Key, v interface{}) Map {
	return Map{m.shape, m.shape.alter(k, func(interface{}, bool) (interface{}, bool) {
		return v, true
	}, m.root)}
}

// Del returns a map without an entry at k.
func (m Map) Del(k Key) Map {
	return Map{m.shape, m.shape.alter(k, func(interface{}, bool) (interface{}, bool) {
		return nil, false
	}, m.root)}
}

// Update rewrites the entry at k through f. f receives the current
// value (or nil, false) and returns the new value and whether the
// entry should be present.
func (m Map) Update(k Key, f func(val interface{}, ok bool) (interface{}, bool)) Map {
	return Map{m.shape, m.shape.alter(k, f, m.root)}
}

// MapMaybe keeps the entries for which f returns true, with the value
// it returned, and drops the rest.
func (m Map) MapMaybe(f func(k Key, val interface{}) (interface{}, bool)) Map {
	return Map{m.shape, m.shape.mapMaybe(f, m.root)}
}

// Iter calls the handler for every entry in structural key order. The
// handler can continue the iteration by returning true or abort with
// false. Iter reports whether all entries were visited.
func (m Map) Iter(h func(k Key, val interface{}) bool) bool {
	return m.shape.iterate(m.root, h)
}

// Items returns all entries in structural key order.
func (m Map) Items() []Item {
	var items []Item
	m.shape.iterate(m.root, func(k Key, val interface{}) bool {
		items = append(items, Item{k, val})
		return true
	})
	return items
}
