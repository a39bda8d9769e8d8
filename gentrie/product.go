package gentrie

// Product is the shape of two key fields in sequence, addressed by
// Pair keys. Its trie is the fst-shaped trie whose values are
// snd-shaped sub-tries; an empty middle sub-trie is never stored.
func Product(fst, snd Shape) Shape {
	return productShape{fst, snd}
}

type productShape struct {
	fst, snd Shape
}

func (p productShape) empty() node      { return p.fst.empty() }
func (p productShape) null(n node) bool { return p.fst.null(n) }

func (p productShape) lookup(k Key, n node) (interface{}, bool) {
	pair := k.(Pair)
	sub, ok := p.fst.lookup(pair.Fst, n)
	if !ok {
		return nil, false
	}
	return p.snd.lookup(pair.Snd, sub)
}

func (p productShape) alter(k Key, f update, n node) node {
	pair := k.(Pair)
	return p.fst.alter(pair.Fst, func(sub interface{}, ok bool) (interface{}, bool) {
		if !ok {
			sub = p.snd.empty()
		}
		sub = p.snd.alter(pair.Snd, f, sub)
		if p.snd.null(sub) {
			// canonical emptiness: drop the outer entry instead
			return nil, false
		}
		return sub, true
	}, n)
}

func (p productShape) mapMaybe(f filter, n node) node {
	return p.fst.mapMaybe(func(kf Key, sub interface{}) (interface{}, bool) {
		sub = p.snd.mapMaybe(func(kg Key, val interface{}) (interface{}, bool) {
			return f(Pair{kf, kg}, val)
		}, sub)
		if p.snd.null(sub) {
			return nil, false
		}
		return sub, true
	}, n)
}

func (p productShape) merge(c combiner, only1, only2 transform, x, y node) node {
	return p.fst.merge(
		func(kf Key, gx, gy interface{}) (interface{}, bool) {
			sub := p.snd.merge(
				func(kg Key, a, b interface{}) (interface{}, bool) {
					return c(Pair{kf, kg}, a, b)
				},
				p.narrow(kf, only1), p.narrow(kf, only2),
				gx, gy)
			if p.snd.null(sub) {
				return nil, false
			}
			return sub, true
		},
		p.oneSided(only1), p.oneSided(only2),
		x, y)
}

// narrow adapts a whole-trie transform to one middle sub-trie: the
// sub-trie is boxed as a single-key trie under kf, transformed, and
// the (possibly removed) entry at kf read back. This pushes the
// one-sided transforms of a merge down to leaf granularity.
func (p productShape) narrow(kf Key, o transform) transform {
	return func(sub node) node {
		boxed := p.fst.alter(kf, func(interface{}, bool) (interface{}, bool) {
			return sub, true
		}, p.fst.empty())
		res, ok := p.fst.lookup(kf, o(boxed))
		if !ok {
			return p.snd.empty()
		}
		return res
	}
}

// oneSided applies a whole-trie transform to a run of one-sided outer
// keys, then drops any middle sub-trie the transform left empty.
func (p productShape) oneSided(o transform) transform {
	return func(n node) node {
		return p.fst.mapMaybe(func(_ Key, sub interface{}) (interface{}, bool) {
			if p.snd.null(sub) {
				return nil, false
			}
			return sub, true
		}, o(n))
	}
}

func (p productShape) iterate(n node, h visitor) bool {
	return p.fst.iterate(n, func(kf Key, sub interface{}) bool {
		return p.snd.iterate(sub, func(kg Key, val interface{}) bool {
			return h(Pair{kf, kg}, val)
		})
	})
}
