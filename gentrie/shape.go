package gentrie

import "sync"

// node is the internal trie representation for one shape: a unitNode,
// a sumNode, a leaf map, or (for Product) the outer trie itself.
type node = interface{}

type (
	update    = func(val interface{}, ok bool) (interface{}, bool)
	filter    = func(k Key, val interface{}) (interface{}, bool)
	combiner  = func(k Key, a, b interface{}) (interface{}, bool)
	transform = func(n node) node
	visitor   = func(k Key, val interface{}) bool
)

// Shape is the structural description of a key type. Shapes are
// built once per key type from Void, Unit, Field, Product, Sum, the
// leaf shapes and Defer; they are immutable and safe to share.
//
// Every trie operation is defined by structural recursion over the
// Shape, so the engine methods live here, one implementation per
// combinator.
type Shape interface {
	empty() node
	null(n node) bool
	lookup(k Key, n node) (interface{}, bool)
	alter(k Key, f update, n node) node
	mapMaybe(f filter, n node) node
	merge(c combiner, only1, only2 transform, x, y node) node
	iterate(n node, h visitor) bool
}

// Void is the shape of an uninhabited key type. Its trie is always
// empty and keyed access to it panics: no key value can exist.
var Void Shape = voidShape{}

type voidShape struct{}

func (voidShape) empty() node    { return nil }
func (voidShape) null(node) bool { return true }

func (voidShape) lookup(Key, node) (interface{}, bool) {
	panic("gentrie: keyed access to a Void shape")
}

func (voidShape) alter(Key, update, node) node {
	panic("gentrie: keyed access to a Void shape")
}

func (voidShape) mapMaybe(_ filter, n node) node                   { return n }
func (voidShape) merge(_ combiner, _, _ transform, x, _ node) node { return x }
func (voidShape) iterate(node, visitor) bool                       { return true }

// Unit is the shape of a key type with exactly one value, UnitKey{}.
// Its trie is a single optional slot.
var Unit Shape = unitShape{}

type unitShape struct{}

type unitNode struct {
	val interface{}
	ok  bool
}

func (unitShape) empty() node      { return unitNode{} }
func (unitShape) null(n node) bool { return !n.(unitNode).ok }

func (unitShape) lookup(_ Key, n node) (interface{}, bool) {
	u := n.(unitNode)
	return u.val, u.ok
}

func (unitShape) alter(_ Key, f update, n node) node {
	u := n.(unitNode)
	if val, keep := f(u.val, u.ok); keep {
		return unitNode{val, true}
	}
	return unitNode{}
}

func (unitShape) mapMaybe(f filter, n node) node {
	u := n.(unitNode)
	if !u.ok {
		return n
	}
	if val, keep := f(UnitKey{}, u.val); keep {
		return unitNode{val, true}
	}
	return unitNode{}
}

func (unitShape) merge(c combiner, only1, only2 transform, x, y node) node {
	ux, uy := x.(unitNode), y.(unitNode)
	switch {
	case ux.ok && uy.ok:
		if val, keep := c(UnitKey{}, ux.val, uy.val); keep {
			return unitNode{val, true}
		}
		return unitNode{}
	case ux.ok:
		return only1(x)
	case uy.ok:
		return only2(y)
	default:
		return x
	}
}

func (unitShape) iterate(n node, h visitor) bool {
	u := n.(unitNode)
	if !u.ok {
		return true
	}
	return h(UnitKey{}, u.val)
}

// Field marks a constructor field holding a key of the inner shape.
// It exists so a Shape tree mirrors the key type declaration one to
// one; the trie is exactly the inner trie and keys pass through
// unwrapped.
func Field(inner Shape) Shape {
	return fieldShape{inner}
}

type fieldShape struct {
	inner Shape
}

func (s fieldShape) empty() node                    { return s.inner.empty() }
func (s fieldShape) null(n node) bool               { return s.inner.null(n) }
func (s fieldShape) mapMaybe(f filter, n node) node { return s.inner.mapMaybe(f, n) }
func (s fieldShape) iterate(n node, h visitor) bool { return s.inner.iterate(n, h) }

func (s fieldShape) lookup(k Key, n node) (interface{}, bool) {
	return s.inner.lookup(k, n)
}

func (s fieldShape) alter(k Key, f update, n node) node {
	return s.inner.alter(k, f, n)
}

func (s fieldShape) merge(c combiner, only1, only2 transform, x, y node) node {
	return s.inner.merge(c, only1, only2, x, y)
}

// Defer ties the knot for self-referential key types, e.g. a sequence
// shape that contains itself as a field:
//
//	var list Shape
//	list = Sum(Unit, Product(Field(Byte), Field(Defer(func() Shape { return list }))))
//
// fn is resolved once, on first use. Recursion is on key values, not
// shapes, so every operation still terminates: a finite key bottoms
// out before the shape does.
func Defer(fn func() Shape) Shape {
	return &deferShape{fn: fn}
}

type deferShape struct {
	fn   func() Shape
	once sync.Once
	s    Shape
}

func (d *deferShape) resolve() Shape {
	d.once.Do(func() {
		d.s = d.fn()
		d.fn = nil
	})
	return d.s
}

func (d *deferShape) empty() node                    { return d.resolve().empty() }
func (d *deferShape) null(n node) bool               { return d.resolve().null(n) }
func (d *deferShape) mapMaybe(f filter, n node) node { return d.resolve().mapMaybe(f, n) }
func (d *deferShape) iterate(n node, h visitor) bool { return d.resolve().iterate(n, h) }

func (d *deferShape) lookup(k Key, n node) (interface{}, bool) {
	return d.resolve().lookup(k, n)
}

func (d *deferShape) alter(k Key, f update, n node) node {
	return d.resolve().alter(k, f, n)
}

func (d *deferShape) merge(c combiner, only1, only2 transform, x, y node) node {
	return d.resolve().merge(c, only1, only2, x, y)
}
