// Package dense implements a persistent map keyed by bounded unsigned
// integers. The structure is a fixed-depth trie with a 256-way fanout
// per level: every node carries a 256-bit presence bitmap and a
// rank-indexed slice of children, so a lookup costs one popcount-rank
// step per key byte. The depth is fixed by the declared key width,
// which makes the layout canonical: two maps holding the same entries
// are built from identical node structures.
//
// All updates are copy-on-write. A modified path is reallocated while
// untouched branches are shared with the previous version, so older
// versions stay valid and cheap to retain.
package dense

import (
	"math/bits"

	"github.com/hideo55/go-popcount"
)

// Map is a persistent integer-keyed map. The zero Map is not usable,
// call New. Map values are cheap to copy; the root is shared.
type Map struct {
	levels int
	root   *node
}

// node is one 256-way fanout level. children holds *node pointers
// above the last level and stored values at the last level, in
// ascending bitmap order. A node always has at least one child.
type node struct {
	bitmap   [4]uint64
	children []interface{}
}

// New returns an empty map for keys of the given width in bits
// (1..64). The width is rounded up to whole bytes.
func New(keyBits int) Map {
	if keyBits < 1 || keyBits > 64 {
		panic("dense: key width must be 1..64 bits")
	}
	return Map{levels: (keyBits + 7) / 8}
}

func (m Map) IsEmpty() bool {
	return m.root == nil
}

// Len returns the number of entries.
func (m Map) Len() int {
	return count(m.root, m.levels-1)
}

func count(n *node, depth int) int {
	if n == nil {
		return 0
	}
	if depth == 0 {
		total := uint64(0)
		for _, w := range n.bitmap {
			total += popcount.Count(w)
		}
		return int(total)
	}
	total := 0
	for _, child := range n.children {
		total += count(child.(*node), depth-1)
	}
	return total
}

func (n *node) has(idx byte) bool {
	return n.bitmap[idx>>6]>>(idx&0x3F)&1 != 0
}

// rank returns the child position for idx: the number of present
// entries below it.
func (n *node) rank(idx byte) int {
	off := idx >> 6
	cnt := popcount.Count(n.bitmap[off] & (uint64(1)<<(idx&0x3F) - 1))
	for w := byte(0); w < off; w++ {
		cnt += popcount.Count(n.bitmap[w])
	}
	return int(cnt)
}

// Get returns the value stored at key.
func (m Map) Get(key uint64) (interface{}, bool) {
	n := m.root
	if n == nil {
		return nil, false
	}
	for shift := uint((m.levels - 1) * 8); ; shift -= 8 {
		idx := byte(key >> shift)
		if !n.has(idx) {
			return nil, false
		}
		child := n.children[n.rank(idx)]
		if shift == 0 {
			return child, true
		}
		n = child.(*node)
	}
}

// Alter rewrites the entry at key through f. f receives the current
// value (or nil, false) and returns the new value and whether the
// entry should be present. The receiver is left untouched.
func (m Map) Alter(key uint64, f func(interface{}, bool) (interface{}, bool)) Map {
	return Map{m.levels, alter(m.root, uint((m.levels-1)*8), key, f)}
}

func alter(n *node, shift uint, key uint64, f func(interface{}, bool) (interface{}, bool)) *node {
	var (
		idx    = byte(key >> shift)
		old    interface{}
		exists bool
		pos    int
	)
	if n != nil {
		exists = n.has(idx)
		pos = n.rank(idx)
		if exists {
			old = n.children[pos]
		}
	}
	if shift == 0 {
		val, keep := f(old, exists)
		switch {
		case keep && exists:
			return n.withChild(pos, val)
		case keep:
			return n.withInserted(idx, pos, val)
		case exists:
			return n.withRemoved(idx, pos)
		default:
			return n
		}
	}
	var sub *node
	if exists {
		sub = old.(*node)
	}
	nsub := alter(sub, shift-8, key, f)
	switch {
	case nsub == sub:
		return n
	case nsub != nil && exists:
		return n.withChild(pos, nsub)
	case nsub != nil:
		return n.withInserted(idx, pos, nsub)
	default:
		return n.withRemoved(idx, pos)
	}
}

func (n *node) withChild(pos int, child interface{}) *node {
	nn := &node{bitmap: n.bitmap, children: make([]interface{}, len(n.children))}
	copy(nn.children, n.children)
	nn.children[pos] = child
	return nn
}

func (n *node) withInserted(idx byte, pos int, child interface{}) *node {
	nn := &node{}
	var old []interface{}
	if n != nil {
		nn.bitmap = n.bitmap
		old = n.children
	}
	nn.bitmap[idx>>6] |= uint64(1) << (idx & 0x3F)
	nn.children = make([]interface{}, len(old)+1)
	copy(nn.children, old[:pos])
	nn.children[pos] = child
	copy(nn.children[pos+1:], old[pos:])
	return nn
}

func (n *node) withRemoved(idx byte, pos int) *node {
	if len(n.children) == 1 {
		return nil
	}
	nn := &node{bitmap: n.bitmap, children: make([]interface{}, len(n.children)-1)}
	nn.bitmap[idx>>6] &^= uint64(1) << (idx & 0x3F)
	copy(nn.children, n.children[:pos])
	copy(nn.children[pos:], n.children[pos+1:])
	return nn
}

// add appends a child to a freshly built node. Only valid while
// building a node in ascending idx order.
func (n *node) add(idx byte, child interface{}) *node {
	if n == nil {
		n = &node{}
	}
	n.bitmap[idx>>6] |= uint64(1) << (idx & 0x3F)
	n.children = append(n.children, child)
	return n
}

// Iter calls the handler for every entry in ascending key order. The
// handler can continue the iteration by returning true or abort with
// false. Iter reports whether all entries were visited.
func (m Map) Iter(h func(uint64, interface{}) bool) bool {
	return iterate(m.root, uint((m.levels-1)*8), 0, h)
}

func iterate(n *node, shift uint, prefix uint64, h func(uint64, interface{}) bool) bool {
	if n == nil {
		return true
	}
	pos := 0
	for w := 0; w < 4; w++ {
		for bmp := n.bitmap[w]; bmp != 0; bmp &= bmp - 1 {
			idx := uint64(w*64 + bits.TrailingZeros64(bmp))
			child := n.children[pos]
			pos++
			if shift == 0 {
				if !h(prefix|idx, child) {
					return false
				}
			} else if !iterate(child.(*node), shift-8, prefix|idx<<shift, h) {
				return false
			}
		}
	}
	return true
}

// MapMaybe keeps the entries for which f returns true, with the value
// it returned, and drops the rest.
func (m Map) MapMaybe(f func(uint64, interface{}) (interface{}, bool)) Map {
	return Map{m.levels, mapMaybe(m.root, uint((m.levels-1)*8), 0, f)}
}

func mapMaybe(n *node, shift uint, prefix uint64, f func(uint64, interface{}) (interface{}, bool)) *node {
	if n == nil {
		return nil
	}
	var (
		nn  *node
		pos int
	)
	for w := 0; w < 4; w++ {
		for bmp := n.bitmap[w]; bmp != 0; bmp &= bmp - 1 {
			idx := byte(w*64 + bits.TrailingZeros64(bmp))
			child := n.children[pos]
			pos++
			if shift == 0 {
				if val, keep := f(prefix|uint64(idx), child); keep {
					nn = nn.add(idx, val)
				}
			} else if sub := mapMaybe(child.(*node), shift-8, prefix|uint64(idx)<<shift, f); sub != nil {
				nn = nn.add(idx, sub)
			}
		}
	}
	return nn
}

// MergeWithKey merges two maps of the same key width. Keys present in
// both sides go through combine, which decides the result value and
// presence. The one-sided remainders are passed, as whole maps, to
// only1 and only2. The transforms must not introduce keys absent from
// their input; this is not checked.
func MergeWithKey(
	combine func(key uint64, a, b interface{}) (interface{}, bool),
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
	shift := uint((x.levels - 1) * 8)
	root := intersect(x.root, y.root, shift, 0, combine)
	root = disjointUnion(root, only1(Map{x.levels, difference(x.root, y.root, shift)}).root, shift)
	root = disjointUnion(root, only2(Map{x.levels, difference(y.root, x.root, shift)}).root, shift)
	return Map{x.levels, root}
}

func intersect(a, b *node, shift uint, prefix uint64, combine func(uint64, interface{}, interface{}) (interface{}, bool)) *node {
	var (
		nn  *node
		pos int
	)
	for w := 0; w < 4; w++ {
		for bmp := a.bitmap[w]; bmp != 0; bmp &= bmp - 1 {
			idx := byte(w*64 + bits.TrailingZeros64(bmp))
			childA := a.children[pos]
			pos++
			if !b.has(idx) {
				continue
			}
			childB := b.children[b.rank(idx)]
			if shift == 0 {
				if val, keep := combine(prefix|uint64(idx), childA, childB); keep {
					nn = nn.add(idx, val)
				}
			} else if sub := intersect(childA.(*node), childB.(*node), shift-8, prefix|uint64(idx)<<shift, combine); sub != nil {
				nn = nn.add(idx, sub)
			}
		}
	}
	return nn
}

// difference keeps the branches of a whose keys are absent from b.
// Untouched branches are shared, not copied.
func difference(a, b *node, shift uint) *node {
	if b == nil {
		return a
	}
	var (
		nn  *node
		pos int
	)
	for w := 0; w < 4; w++ {
		for bmp := a.bitmap[w]; bmp != 0; bmp &= bmp - 1 {
			idx := byte(w*64 + bits.TrailingZeros64(bmp))
			childA := a.children[pos]
			pos++
			if !b.has(idx) {
				nn = nn.add(idx, childA)
				continue
			}
			if shift == 0 {
				continue
			}
			if sub := difference(childA.(*node), b.children[b.rank(idx)].(*node), shift-8); sub != nil {
				nn = nn.add(idx, sub)
			}
		}
	}
	return nn
}

// disjointUnion assumes the key sets do not overlap below the leaf
// level; on a clash the left value wins.
func disjointUnion(a, b *node, shift uint) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	var (
		nn         *node
		posA, posB int
	)
	for w := 0; w < 4; w++ {
		for bmp := a.bitmap[w] | b.bitmap[w]; bmp != 0; bmp &= bmp - 1 {
			idx := byte(w*64 + bits.TrailingZeros64(bmp))
			inA, inB := a.has(idx), b.has(idx)
			switch {
			case inA && inB:
				childA, childB := a.children[posA], b.children[posB]
				posA++
				posB++
				if shift == 0 {
					nn = nn.add(idx, childA)
				} else {
					nn = nn.add(idx, disjointUnion(childA.(*node), childB.(*node), shift-8))
				}
			case inA:
				nn = nn.add(idx, a.children[posA])
				posA++
			default:
				nn = nn.add(idx, b.children[posB])
				posB++
			}
		}
	}
	return nn
}
