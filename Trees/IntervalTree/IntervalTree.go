// Package IntervalTree indexes closed numeric ranges by their (low, high)
// endpoints and answers overlap queries in O(log n): Find locates any one
// stored interval overlapping a query range, Iterate enumerates all of them
// in ascending endpoint order. It augments the red-black engine of package
// Trees with per-subtree max/size/height aggregates; the size and height
// fields additionally pay for rank queries and O(1) Size/Height.
// The tree is single threaded: callers wanting concurrent access must
// provide their own exclusion, and concurrent readers are only safe in the
// absence of writers.
package IntervalTree

import (
	"fmt"

	"github.com/g-m-twostay/go-intervals/Trees"
	"golang.org/x/exp/constraints"
)

// InvalidIntervalError is panicked by NewNode when low > high.
type InvalidIntervalError[T constraints.Ordered] struct {
	Low, High T
}

func (e InvalidIntervalError[T]) Error() string {
	return fmt.Sprintf("IntervalTree: invalid interval [%v, %v]", e.Low, e.High)
}

// cbs is the augmentation callback set registered with the Trees engine.
// It is stateless, so a zero value attached to one tree can't interfere
// with another.
type cbs[T constraints.Ordered, S constraints.Unsigned] struct{}

// Cmp orders nodes by low then high. Three-way comparison, no subtraction:
// subtracting endpoints overflows near the extremes of T.
func (cbs[T, S]) Cmp(a, b *Node[T, S]) int {
	switch {
	case a.low < b.low:
		return -1
	case b.low < a.low:
		return 1
	case a.high < b.high:
		return -1
	case b.high < a.high:
		return 1
	default:
		return 0
	}
}

// Propagate recomputes aggregates from n up to the root.
func (cbs[T, S]) Propagate(n *Node[T, S]) {
	for ; n != nil; n = n.Parent() {
		n.fix()
	}
}

// Rotate recomputes aggregates of the rotated pair and the new top's
// parent. A single rotation changes the subtree composition of exactly
// these three nodes, so a full root-ward walk per rotation is unnecessary.
func (cbs[T, S]) Rotate(oldTop, newTop *Node[T, S]) {
	oldTop.fix()
	newTop.fix()
	if p := newTop.Parent(); p != nil {
		p.fix()
	}
}

// Tree is an interval tree over endpoints of type T. S is the type used
// for subtree sizes and should be a wide upper bound for the number of
// stored intervals, as in the other trees of this library. Equal intervals
// may be stored multiple times through distinct nodes.
// Tree shouldn't be created directly using struct literal; use New.
type Tree[T constraints.Ordered, S constraints.Unsigned] struct {
	t Trees.RBTree[Node[T, S], *Node[T, S]]
}

// New returns an empty Tree.
func New[T constraints.Ordered, S constraints.Unsigned]() *Tree[T, S] {
	return &Tree[T, S]{t: *Trees.New[Node[T, S], *Node[T, S]](cbs[T, S]{})}
}

// Root of the tree, nil when empty.
// Time: O(1); Space: O(1)
func (u *Tree[T, S]) Root() *Node[T, S] {
	return u.t.Root()
}

// Insert links n into u. n must be free standing (never inserted, or
// removed since); inserting an already linked node panics with
// Trees.AlreadyLinkedError.
// Time: O(log n)
func (u *Tree[T, S]) Insert(n *Node[T, S]) {
	u.t.Insert(n)
}

// Remove unlinks n from u and returns it to the free-standing state; the
// caller may then reuse or release it. n must currently be linked in u;
// removing an unlinked node panics with Trees.NotLinkedError.
// Time: O(log n)
func (u *Tree[T, S]) Remove(n *Node[T, S]) {
	u.t.Unlink(n)
}

// Clear drops the root reference without touching any node. Callers that
// need to reclaim node memory must do so beforehand, e.g. via InOrder.
// Time: O(1); Space: O(1)
func (u *Tree[T, S]) Clear() {
	u.t.Clear()
}

// Size of the tree.
// Time: O(1); Space: O(1)
func (u *Tree[T, S]) Size() uint {
	return uint(u.t.Root().treeSize())
}

// Height of the tree, counting nodes along the longest root-to-leaf path;
// an empty tree has height 0 and a single node height 1.
// Time: O(1); Space: O(1)
func (u *Tree[T, S]) Height() uint {
	return uint(u.t.Root().treeHeight())
}

// Find returns any one stored interval overlapping [low, high], not
// necessarily the smallest, or nil if none does. At every node the left
// subtree is pruned iff its max high endpoint is below low, which excludes
// exactly one subtree per level.
// Time: O(log n); Space: O(1)
func (u *Tree[T, S]) Find(low, high T) *Node[T, S] {
	for n := u.t.Root(); n != nil; {
		if n.overlaps(low, high) {
			return n
		} else if l := n.Left(); l == nil || l.max < low {
			n = n.Right()
		} else {
			n = l
		}
	}
	return nil
}

// Iterator is a cursor over the stored intervals overlapping a query range
// fixed at creation, in ascending (low, high) order. The tree mustn't be
// modified while an Iterator is in use.
type Iterator[T constraints.Ordered, S constraints.Unsigned] struct {
	t         *Tree[T, S]
	low, high T
	n         *Node[T, S]
}

// Iterate returns an unpositioned cursor over the intervals of u
// overlapping [low, high]. Enumerating k overlaps costs O(log n + k).
func (u *Tree[T, S]) Iterate(low, high T) Iterator[T, S] {
	return Iterator[T, S]{t: u, low: low, high: high}
}

// First positions the cursor on the smallest overlapping interval and
// returns it, or nil if there is none.
func (it *Iterator[T, S]) First() *Node[T, S] {
	it.n = it.t.t.Root().minOverlap(it.low, it.high)
	return it.n
}

// Next advances to the next overlapping interval and returns it. Once nil
// has been returned the cursor is exhausted and Next keeps returning nil.
func (it *Iterator[T, S]) Next() *Node[T, S] {
	if it.n != nil {
		it.n = it.n.nextOverlap(it.low, it.high)
	}
	return it.n
}

// Minimum returns the smallest stored interval in (low, high) order, nil
// when empty.
// Time: O(log n); Space: O(1)
func (u *Tree[T, S]) Minimum() *Node[T, S] {
	n := u.t.Root()
	if n != nil {
		for n.Left() != nil {
			n = n.Left()
		}
	}
	return n
}

// Maximum returns the greatest stored interval in (low, high) order, nil
// when empty.
// Time: O(log n); Space: O(1)
func (u *Tree[T, S]) Maximum() *Node[T, S] {
	n := u.t.Root()
	if n != nil {
		for n.Right() != nil {
			n = n.Right()
		}
	}
	return n
}

// KLargest finds the k-th interval in (low, high) order, 1<=k<=Size().
// Returns nil if k is out of range.
// This function utilizes the subtree sizes the tree already maintains to
// provide O(log n) performance with very small constant.
// Time: O(log n); Space: O(1)
func (u *Tree[T, S]) KLargest(k uint) *Node[T, S] {
	// k is ranged in uint before narrowing to S, so a k beyond S's width
	// can't wrap into a valid rank.
	if cur := u.t.Root(); k >= 1 && k <= uint(cur.treeSize()) {
		for t := S(k); ; {
			if ls := cur.Left().treeSize(); t < ls+1 {
				cur = cur.Left()
			} else if t == ls+1 {
				return cur
			} else {
				t -= ls + 1
				cur = cur.Right()
			}
		}
	}
	return nil
}

// RankOf n in u according to in-order, 1<=r<=Size(). n must be linked in
// u, otherwise the result is meaningless.
// Time: O(log n); Space: O(1)
func (u *Tree[T, S]) RankOf(n *Node[T, S]) uint {
	r := n.Left().treeSize() + 1
	for c, p := n, n.Parent(); p != nil; c, p = p, p.Parent() {
		if p.Right() == c {
			r += p.Left().treeSize() + 1
		}
	}
	return uint(r)
}

// InOrder returns a closure function f acting like an iterator over all
// stored intervals in (low, high) order, regardless of any query range.
// Calling f is like calling "Next()" of iterators: n, valid = f(). valid
// can't turn true after it first became false. The tree mustn't be
// modified during the iteration.
// Time: f(): amortized O(1) at each call. Space: O(1)
func (u *Tree[T, S]) InOrder() func() (*Node[T, S], bool) {
	cur := u.Minimum()
	return func() (*Node[T, S], bool) {
		n := cur
		if n == nil {
			return nil, false
		}
		cur = n.successor()
		return n, true
	}
}

// Corrupt returns whether the tree has corrupt structures: a parent link
// that disagrees with a child link, a node out of (low, high) order with a
// child, or a stored max/size/height aggregate that differs from a full
// recomputation over the subtree.
// Time: O(n)
func (u *Tree[T, S]) Corrupt() bool {
	return audit(u.t.Root())
}

func audit[T constraints.Ordered, S constraints.Unsigned](n *Node[T, S]) bool {
	if n == nil {
		return false
	}
	var c cbs[T, S]
	l, r := n.Left(), n.Right()
	if l != nil && (l.Parent() != n || c.Cmp(l, n) > 0 || audit(l)) {
		return true
	}
	if r != nil && (r.Parent() != n || c.Cmp(r, n) < 0 || audit(r)) {
		return true
	}
	m, sz, ht := n.recompute()
	return n.max != m || n.sz != sz || n.ht != ht
}
