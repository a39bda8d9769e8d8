// Package ordered implements a persistent ordered map over keys with
// a caller-supplied total order. The structure is a weight-balanced
// binary tree: every update copies the touched path and rebalances it
// with single or double rotations, sharing the untouched subtrees
// with the previous version. Iteration is in-order, ascending by the
// comparison.
package ordered

// Cmp compares two keys and returns a negative, zero or positive
// number, like bytes.Compare.
type Cmp func(a, b interface{}) int

// Map is a persistent ordered map. The zero Map is not usable, call
// New. Map values are cheap to copy; the root is shared.
type Map struct {
	cmp  Cmp
	root *tree
}

type tree struct {
	key, val    interface{}
	size        int
	left, right *tree
}

// New returns an empty map ordered by cmp.
func New(cmp Cmp) Map {
	return Map{cmp: cmp}
}

func (m Map) IsEmpty() bool {
	return m.root == nil
}

// Len returns the number of entries.
func (m Map) Len() int {
	return size(m.root)
}

func size(t *tree) int {
	if t == nil {
		return 0
	}
	return t.size
}

func mk(k, v interface{}, l, r *tree) *tree {
	return &tree{key: k, val: v, size: size(l) + size(r) + 1, left: l, right: r}
}

// Weight-balance parameters as in Adams' trees: a subtree may be at
// most delta times heavier than its sibling; ratio picks between a
// single and a double rotation.
const (
	delta = 3
	ratio = 2
)

// balance restores the weight invariant after one insertion or
// deletion in either subtree.
func balance(k, v interface{}, l, r *tree) *tree {
	sl, sr := size(l), size(r)
	switch {
	case sl+sr <= 1:
		return mk(k, v, l, r)
	case sr > delta*sl:
		if size(r.left) < ratio*size(r.right) {
			return singleL(k, v, l, r)
		}
		return doubleL(k, v, l, r)
	case sl > delta*sr:
		if size(l.right) < ratio*size(l.left) {
			return singleR(k, v, l, r)
		}
		return doubleR(k, v, l, r)
	default:
		return mk(k, v, l, r)
	}
}

func singleL(k, v interface{}, l, r *tree) *tree {
	return mk(r.key, r.val, mk(k, v, l, r.left), r.right)
}

func singleR(k, v interface{}, l, r *tree) *tree {
	return mk(l.key, l.val, l.left, mk(k, v, l.right, r))
}

func doubleL(k, v interface{}, l, r *tree) *tree {
	rl := r.left
	return mk(rl.key, rl.val, mk(k, v, l, rl.left), mk(r.key, r.val, rl.right, r.right))
}

func doubleR(k, v interface{}, l, r *tree) *tree {
	lr := l.right
	return mk(lr.key, lr.val, mk(l.key, l.val, l.left, lr.left), mk(k, v, lr.right, r))
}

// Get returns the value stored at key.
func (m Map) Get(key interface{}) (interface{}, bool) {
	t := m.root
	for t != nil {
		switch c := m.cmp(key, t.key); {
		case c < 0:
			t = t.left
		case c > 0:
			t = t.right
		default:
			return t.val, true
		}
	}
	return nil, false
}

// Alter rewrites the entry at key through f. f receives the current
// value (or nil, false) and returns the new value and whether the
// entry should be present. The receiver is left untouched.
func (m Map) Alter(key interface{}, f func(interface{}, bool) (interface{}, bool)) Map {
	return Map{m.cmp, m.alter(m.root, key, f)}
}

func (m Map) alter(t *tree, key interface{}, f func(interface{}, bool) (interface{}, bool)) *tree {
	if t == nil {
		if val, keep := f(nil, false); keep {
			return mk(key, val, nil, nil)
		}
		return nil
	}
	switch c := m.cmp(key, t.key); {
	case c < 0:
		nl := m.alter(t.left, key, f)
		if nl == t.left {
			return t
		}
		return balance(t.key, t.val, nl, t.right)
	case c > 0:
		nr := m.alter(t.right, key, f)
		if nr == t.right {
			return t
		}
		return balance(t.key, t.val, t.left, nr)
	default:
		if val, keep := f(t.val, true); keep {
			return mk(t.key, val, t.left, t.right)
		}
		return glue(t.left, t.right)
	}
}

// glue joins the two subtrees of a deleted root.
func glue(l, r *tree) *tree {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case size(l) > size(r):
		k, v, nl := deleteMax(l)
		return balance(k, v, nl, r)
	default:
		k, v, nr := deleteMin(r)
		return balance(k, v, l, nr)
	}
}

func deleteMin(t *tree) (k, v interface{}, rest *tree) {
	if t.left == nil {
		return t.key, t.val, t.right
	}
	k, v, nl := deleteMin(t.left)
	return k, v, balance(t.key, t.val, nl, t.right)
}

func deleteMax(t *tree) (k, v interface{}, rest *tree) {
	if t.right == nil {
		return t.key, t.val, t.left
	}
	k, v, nr := deleteMax(t.right)
	return k, v, balance(t.key, t.val, t.left, nr)
}

// Iter calls the handler for every entry in ascending key order. The
// handler can continue the iteration by returning true or abort with
// false. Iter reports whether all entries were visited.
func (m Map) Iter(h func(k, v interface{}) bool) bool {
	return iterate(m.root, h)
}

func iterate(t *tree, h func(k, v interface{}) bool) bool {
	if t == nil {
		return true
	}
	return iterate(t.left, h) && h(t.key, t.val) && iterate(t.right, h)
}

type entry struct {
	key, val interface{}
}

// MapMaybe keeps the entries for which f returns true, with the value
// it returned, and drops the rest.
func (m Map) MapMaybe(f func(k, v interface{}) (interface{}, bool)) Map {
	var out []entry
	iterate(m.root, func(k, v interface{}) bool {
		if nv, keep := f(k, v); keep {
			out = append(out, entry{k, nv})
		}
		return true
	})
	return Map{m.cmp, build(out)}
}

// build makes a balanced tree from entries sorted in ascending order.
func build(es []entry) *tree {
	if len(es) == 0 {
		return nil
	}
	mid := len(es) / 2
	return mk(es[mid].key, es[mid].val, build(es[:mid]), build(es[mid+1:]))
}

// MergeWithKey merges two maps sharing one comparison. Keys present
// in both sides go through combine, which decides the result value
// and presence. The one-sided remainders are passed, as whole maps,
// to only1 and only2. The transforms must not introduce keys absent
// from their input; this is not checked.
func MergeWithKey(
	combine func(key, a, b interface{}) (interface{}, bool),
	only1, only2 func(Map) Map,
	x, y Map,
) Map {
	switch {
	case x.root == nil && y.root == nil:
		return x
	case y.root == nil:
		return only1(x)
	case x.root == nil:
		return only2(y)
	}
	var both []entry
	iterate(x.root, func(k, v interface{}) bool {
		if w, ok := y.Get(k); ok {
			if nv, keep := combine(k, v, w); keep {
				both = append(both, entry{k, nv})
			}
		}
		return true
	})
	l := only1(x.MapMaybe(func(k, v interface{}) (interface{}, bool) {
		_, ok := y.Get(k)
		return v, !ok
	}))
	r := only2(y.MapMaybe(func(k, v interface{}) (interface{}, bool) {
		_, ok := x.Get(k)
		return v, !ok
	}))
	// the three parts have disjoint key sets; zip them back together
	out := mergeSorted(x.cmp, both, toSlice(l.root))
	out = mergeSorted(x.cmp, out, toSlice(r.root))
	return Map{x.cmp, build(out)}
}

func toSlice(t *tree) []entry {
	var out []entry
	iterate(t, func(k, v interface{}) bool {
		out = append(out, entry{k, v})
		return true
	})
	return out
}

func mergeSorted(cmp Cmp, a, b []entry) []entry {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]entry, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if cmp(a[i].key, b[j].key) <= 0 {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
