package IntervalTree

import (
	"github.com/g-m-twostay/go-intervals/Trees"
	"golang.org/x/exp/constraints"
)

// Node stores one closed interval [low, high] together with the aggregates
// of the subtree below it: max is the largest high endpoint in the subtree,
// sz its node count, and ht its height counting the node itself. Nodes are
// caller owned; the tree only links and unlinks them and a node mustn't be
// released while linked.
type Node[T constraints.Ordered, S constraints.Unsigned] struct {
	Trees.Node[Node[T, S]]
	low, high T
	max       T
	sz        S
	ht        byte
}

// NewNode returns a free-standing node holding [low, high]. It panics with
// InvalidIntervalError if low > high.
func NewNode[T constraints.Ordered, S constraints.Unsigned](low, high T) *Node[T, S] {
	if low > high {
		panic(InvalidIntervalError[T]{low, high})
	}
	return &Node[T, S]{low: low, high: high, max: high, sz: 1, ht: 1}
}

// RB exposes the linkage to the Trees engine.
func (u *Node[T, S]) RB() *Trees.Node[Node[T, S]] {
	return &u.Node
}

// Low endpoint of the interval.
func (u *Node[T, S]) Low() T {
	return u.low
}

// High endpoint of the interval.
func (u *Node[T, S]) High() T {
	return u.high
}

// Max is the largest high endpoint in the subtree rooted at u, u included.
func (u *Node[T, S]) Max() T {
	return u.max
}

func (u *Node[T, S]) treeSize() S {
	if u == nil {
		return 0
	}
	return u.sz
}

func (u *Node[T, S]) treeHeight() byte {
	if u == nil {
		return 0
	}
	return u.ht
}

// overlaps reports whether [low, high] intersects u's interval. Two closed
// intervals [a,b] and [c,d] overlap iff b >= c && d >= a.
func (u *Node[T, S]) overlaps(low, high T) bool {
	return high >= u.low && u.high >= low
}

// recompute derives the aggregates implied by u's immediate children. The
// identity for an absent child's max is u's own high, so endpoints below
// the zero value of T are handled.
func (u *Node[T, S]) recompute() (m T, sz S, ht byte) {
	l, r := u.Left(), u.Right()
	sz = 1 + l.treeSize() + r.treeSize()
	ht = 1 + max(l.treeHeight(), r.treeHeight())
	m = u.high
	if l != nil && m < l.max {
		m = l.max
	}
	if r != nil && m < r.max {
		m = r.max
	}
	return
}

// fix overwrites u's stored aggregates with the recomputed ones.
func (u *Node[T, S]) fix() {
	u.max, u.sz, u.ht = u.recompute()
}

// minOverlap returns the first node of u's subtree in (low, high) order
// that overlaps [low, high], or nil. At every step the left subtree is
// entered iff its max reaches low: a subtree whose max high endpoint is
// below low can't contain an overlap, and if the left subtree has none
// then any candidate remembered on the way down is already the smallest.
// Time: O(log n); Space: O(1)
func (u *Node[T, S]) minOverlap(low, high T) *Node[T, S] {
	var min *Node[T, S]
	for n := u; n != nil; {
		its := n.overlaps(low, high)
		if its {
			min = n
		}
		if l := n.Left(); l == nil || l.max < low {
			if its { // nothing smaller can overlap
				break
			}
			n = n.Right()
		} else {
			n = l
		}
	}
	return min
}

// nextOverlap returns the smallest overlapping node greater than u in
// (low, high) order, or nil. It first tries the leftmost overlap of u's
// right subtree, then climbs parent links to the in-order successor and
// repeats from there.
// Time: O(log n) amortized over a full iteration; Space: O(1)
func (u *Node[T, S]) nextOverlap(low, high T) *Node[T, S] {
	for n := u; n != nil; {
		if r := n.Right(); r != nil {
			if min := r.minOverlap(low, high); min != nil {
				return min
			}
		}
		c := n
		n = n.Parent()
		for n != nil && n.Right() == c {
			c = n
			n = n.Parent()
		}
		if n != nil && n.overlaps(low, high) {
			return n
		}
	}
	return nil
}

// successor of u in (low, high) order regardless of any query range.
func (u *Node[T, S]) successor() *Node[T, S] {
	if r := u.Right(); r != nil {
		for r.Left() != nil {
			r = r.Left()
		}
		return r
	}
	c, p := u, u.Parent()
	for p != nil && p.Right() == c {
		c, p = p, p.Parent()
	}
	return p
}
