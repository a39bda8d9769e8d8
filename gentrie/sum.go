package gentrie

// Sum is the shape of a choice between two alternatives, addressed by
// Left and Right keys. Its trie is an ordered pair of independent
// sub-tries; iteration yields every Left entry strictly before every
// Right entry.
func Sum(left, right Shape) Shape {
	return sumShape{left, right}
}

type sumShape struct {
	left, right Shape
}

type sumNode struct {
	left, right node
}

func (s sumShape) empty() node {
	return sumNode{s.left.empty(), s.right.empty()}
}

func (s sumShape) null(n node) bool {
	sn := n.(sumNode)
	return s.left.null(sn.left) && s.right.null(sn.right)
}

func (s sumShape) lookup(k Key, n node) (interface{}, bool) {
	sn := n.(sumNode)
	switch k := k.(type) {
	case Left:
		return s.left.lookup(k.Key, sn.left)
	case Right:
		return s.right.lookup(k.Key, sn.right)
	default:
		panic("gentrie: a Sum key must be Left or Right")
	}
}

func (s sumShape) alter(k Key, f update, n node) node {
	sn := n.(sumNode)
	switch k := k.(type) {
	case Left:
		sn.left = s.left.alter(k.Key, f, sn.left)
	case Right:
		sn.right = s.right.alter(k.Key, f, sn.right)
	default:
		panic("gentrie: a Sum key must be Left or Right")
	}
	return sn
}

func (s sumShape) mapMaybe(f filter, n node) node {
	sn := n.(sumNode)
	return sumNode{
		left: s.left.mapMaybe(func(k Key, val interface{}) (interface{}, bool) {
			return f(Left{k}, val)
		}, sn.left),
		right: s.right.mapMaybe(func(k Key, val interface{}) (interface{}, bool) {
			return f(Right{k}, val)
		}, sn.right),
	}
}

// merge zips the alternatives independently: left with left, right
// with right. A one-sided transform is run with the opposite
// alternative structurally empty, never as an error.
func (s sumShape) merge(c combiner, only1, only2 transform, x, y node) node {
	sx, sy := x.(sumNode), y.(sumNode)
	return sumNode{
		left: s.left.merge(
			func(k Key, a, b interface{}) (interface{}, bool) { return c(Left{k}, a, b) },
			s.onLeft(only1), s.onLeft(only2),
			sx.left, sy.left),
		right: s.right.merge(
			func(k Key, a, b interface{}) (interface{}, bool) { return c(Right{k}, a, b) },
			s.onRight(only1), s.onRight(only2),
			sx.right, sy.right),
	}
}

func (s sumShape) onLeft(o transform) transform {
	return func(n node) node {
		return o(sumNode{n, s.right.empty()}).(sumNode).left
	}
}

func (s sumShape) onRight(o transform) transform {
	return func(n node) node {
		return o(sumNode{s.left.empty(), n}).(sumNode).right
	}
}

func (s sumShape) iterate(n node, h visitor) bool {
	sn := n.(sumNode)
	return s.left.iterate(sn.left, func(k Key, val interface{}) bool {
		return h(Left{k}, val)
	}) && s.right.iterate(sn.right, func(k Key, val interface{}) bool {
		return h(Right{k}, val)
	})
}
