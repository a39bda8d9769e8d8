// Package gentrie implements a persistent associative container keyed
// by values of an arbitrary composite type, without a hash or
// comparison function per key type.
//
// A key type is described, once, by a Shape: a tree of five
// structural combinators mirroring the type's constructors and
// fields:
//
//   - Void             an uninhabited key type
//   - Unit             a constructor with no fields
//   - Field(S)         one field holding a key of shape S
//   - Product(F, G)    two fields in sequence
//   - Sum(F, G)        a choice between two alternatives
//
// plus the leaf shapes Byte, Rune, Int64 and BigInt for indivisible
// key domains, and Defer for self-referential key types such as
// sequences.
//
// The trie for a shape branches the way the shape does:
//
//   - a Unit trie is a single optional value slot;
//   - a Field trie is the leaf (or nested) trie of its inner shape;
//   - a Product(F, G) trie is an F-trie whose values are G-tries;
//   - a Sum(F, G) trie is a pair of independent sub-tries.
//
// Keys are passed in their structural form: UnitKey{}, Pair{f, g},
// Left{k} / Right{k}, and plain byte/rune/int64/*big.Int values at
// the leaves. A thin per-type facade (see the strmap package) maps a
// concrete Go type to this form; the engine never inspects concrete
// key types itself.
//
// Invariants:
//
//   - Canonical emptiness: a Product trie never stores an empty
//     middle sub-trie; an update that would leave one behind removes
//     the outer entry instead. This keeps IsEmpty proportional to the
//     shape depth and makes merge-based equality sound.
//   - Persistence: every operation returns a new Map and leaves its
//     receiver untouched. Unmodified subtrees are shared between
//     versions, so retaining old Maps is cheap and concurrent readers
//     need no locking.
//
// Iteration order is the structural order of the shape: leaf domains
// ascend in their natural order, Product entries are lexicographic
// (outer field first), and every Left entry of a Sum comes strictly
// before every Right entry.
//
// The only fatal condition is keyed access through a Void shape: no
// key value of an uninhabited type can exist, so Get, Set, Del and
// Update panic there. Everything else is total; absent keys read as
// (nil, false) and merges or filters may simply produce an empty
// result.
package gentrie
