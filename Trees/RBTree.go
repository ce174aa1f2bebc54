package Trees

// RBTree is an intrusive red-black tree over nodes of type T with linkage
// accessed through PT. It doesn't own node memory: callers allocate nodes,
// Insert links them, Unlink returns them to the free-standing state, and
// Clear merely drops the root. A node mustn't be freed or reused while it
// is linked.
// Equal nodes under Callbacks.Cmp are kept; a later equal insert lands in
// the right subtree of the earlier one.
// The worst case height is 2*log2(n+1), so all mutations are O(log n).
// No synchronization of any kind: the caller must guarantee exclusive
// access for mutations and absence of writers for concurrent reads.
type RBTree[T any, PT Ptr[T]] struct {
	root *T
	cb   Callbacks[T]
}

// New returns an empty RBTree with cb attached for the tree's lifetime.
func New[T any, PT Ptr[T]](cb Callbacks[T]) *RBTree[T, PT] {
	return &RBTree[T, PT]{cb: cb}
}

// Root of the tree, nil when empty.
// Time: O(1); Space: O(1)
func (u *RBTree[T, PT]) Root() *T {
	return u.root
}

// Clear drops the root reference. No node is touched or freed; a caller
// that owns the node memory must walk the tree beforehand if it needs to
// reclaim it.
// Time: O(1); Space: O(1)
func (u *RBTree[T, PT]) Clear() {
	u.root = nil
}

func (u *RBTree[T, PT]) nd(n *T) *Node[T] {
	return PT(n).RB()
}

func (u *RBTree[T, PT]) isRed(n *T) bool {
	return n != nil && u.nd(n).red
}

// parent, left, right are nil-safe views of the linkage.
func (u *RBTree[T, PT]) parent(n *T) *T {
	if n == nil {
		return nil
	}
	return u.nd(n).p
}

func (u *RBTree[T, PT]) left(n *T) *T {
	if n == nil {
		return nil
	}
	return u.nd(n).l
}

func (u *RBTree[T, PT]) right(n *T) *T {
	if n == nil {
		return nil
	}
	return u.nd(n).r
}

// rotateLeft lifts n's right child above n and invokes the Rotate callback
// on the pair. Only n, the lifted child, and the lifted child's new parent
// change subtree composition.
// Time: O(1); Space: O(1)
func (u *RBTree[T, PT]) rotateLeft(n *T) {
	c := u.nd(n).r
	u.nd(n).r = u.nd(c).l
	if u.nd(c).l != nil {
		u.nd(u.nd(c).l).p = n
	}
	u.nd(c).p = u.nd(n).p
	switch p := u.nd(n).p; {
	case p == nil:
		u.root = c
	case u.nd(p).l == n:
		u.nd(p).l = c
	default:
		u.nd(p).r = c
	}
	u.nd(c).l = n
	u.nd(n).p = c
	u.cb.Rotate(n, c)
}

func (u *RBTree[T, PT]) rotateRight(n *T) {
	c := u.nd(n).l
	u.nd(n).l = u.nd(c).r
	if u.nd(c).r != nil {
		u.nd(u.nd(c).r).p = n
	}
	u.nd(c).p = u.nd(n).p
	switch p := u.nd(n).p; {
	case p == nil:
		u.root = c
	case u.nd(p).r == n:
		u.nd(p).r = c
	default:
		u.nd(p).l = c
	}
	u.nd(c).r = n
	u.nd(n).p = c
	u.cb.Rotate(n, c)
}

// Insert links n into the tree at the position given by Callbacks.Cmp,
// restores the red-black shape with every rotation invoking the Rotate
// callback, then invokes Propagate(n) once. The ordering matters for
// shape-dependent aggregates such as heights: a rebalancing rotation
// changes them on the whole root path, not just at the rotated pair, so
// the root-ward walk must run last. Rotation old tops that end up off n's
// root path are left final by the Rotate callback, whose recomputation
// only reads subtrees the insertion never entered. n must be free
// standing, otherwise Insert panics with AlreadyLinkedError.
// Time: O(log n)
func (u *RBTree[T, PT]) Insert(n *T) {
	nb := u.nd(n)
	if nb.linked() || u.root == n {
		panic(AlreadyLinkedError{n})
	}
	var p *T
	link := &u.root
	for *link != nil {
		p = *link
		if u.cb.Cmp(n, p) < 0 {
			link = &u.nd(p).l
		} else {
			link = &u.nd(p).r
		}
	}
	*link = n
	nb.p, nb.red = p, true
	u.insertFixup(n)
	u.cb.Propagate(n)
}

func (u *RBTree[T, PT]) insertFixup(n *T) {
	for u.isRed(u.parent(n)) {
		p := u.parent(n)
		g := u.parent(p) // p is red, so it isn't the root and g exists
		if p == u.left(g) {
			if y := u.right(g); u.isRed(y) {
				u.nd(p).red, u.nd(y).red, u.nd(g).red = false, false, true
				n = g
			} else {
				if n == u.right(p) {
					n = p
					u.rotateLeft(n)
					p = u.parent(n)
				}
				u.nd(p).red, u.nd(g).red = false, true
				u.rotateRight(g)
			}
		} else {
			if y := u.left(g); u.isRed(y) {
				u.nd(p).red, u.nd(y).red, u.nd(g).red = false, false, true
				n = g
			} else {
				if n == u.left(p) {
					n = p
					u.rotateRight(n)
					p = u.parent(n)
				}
				u.nd(p).red, u.nd(g).red = false, true
				u.rotateLeft(g)
			}
		}
	}
	u.nd(u.root).red = false
}

// transplant replaces the subtree rooted at a with the one rooted at b in
// a's parent. b may be nil.
func (u *RBTree[T, PT]) transplant(a, b *T) {
	switch p := u.nd(a).p; {
	case p == nil:
		u.root = b
	case u.nd(p).l == a:
		u.nd(p).l = b
	default:
		u.nd(p).r = b
	}
	if b != nil {
		u.nd(b).p = u.nd(a).p
	}
}

// Unlink detaches n from the tree and returns it to the free-standing
// state; the caller may then reuse or release it. Every rebalancing
// rotation invokes the Rotate callback, and after the shape is restored
// Propagate is invoked at most once, from the node whose subtree
// composition changed first. As in Insert, the root-ward walk runs after
// the fixup so that shape-dependent aggregates settle on the final tree.
// n must currently be linked in u, otherwise Unlink panics with
// NotLinkedError.
// Time: O(log n)
func (u *RBTree[T, PT]) Unlink(n *T) {
	nb := u.nd(n)
	if !nb.linked() && u.root != n {
		panic(NotLinkedError{n})
	}
	var x, xp *T // x replaces the spliced-out position, xp is its parent
	removedRed := nb.red
	switch {
	case nb.l == nil:
		x, xp = nb.r, nb.p
		u.transplant(n, x)
	case nb.r == nil:
		x, xp = nb.l, nb.p
		u.transplant(n, x)
	default:
		y := nb.r // in-order successor of n takes its place
		for u.nd(y).l != nil {
			y = u.nd(y).l
		}
		yb := u.nd(y)
		removedRed = yb.red
		x = yb.r
		if yb.p == n {
			xp = y
		} else {
			xp = yb.p
			u.transplant(y, x)
			yb.r = nb.r
			u.nd(yb.r).p = y
		}
		u.transplant(n, y)
		yb.l = nb.l
		u.nd(yb.l).p = y
		yb.red = nb.red
	}
	if !removedRed {
		u.deleteFixup(x, xp)
	}
	switch {
	case xp != nil:
		u.cb.Propagate(xp)
	case x != nil:
		u.cb.Propagate(x)
	}
	nb.reset()
}

// deleteFixup restores the black-height invariant after a black node was
// spliced out. x carries the extra black and may be nil; xp is its parent.
func (u *RBTree[T, PT]) deleteFixup(x, xp *T) {
	for x != u.root && !u.isRed(x) {
		if x == u.left(xp) {
			w := u.right(xp) // non-nil: x's side is short one black
			if u.isRed(w) {
				u.nd(w).red, u.nd(xp).red = false, true
				u.rotateLeft(xp)
				w = u.right(xp)
			}
			if !u.isRed(u.left(w)) && !u.isRed(u.right(w)) {
				u.nd(w).red = true
				x, xp = xp, u.parent(xp)
			} else {
				if !u.isRed(u.right(w)) {
					u.nd(u.left(w)).red, u.nd(w).red = false, true
					u.rotateRight(w)
					w = u.right(xp)
				}
				u.nd(w).red = u.nd(xp).red
				u.nd(xp).red = false
				u.nd(u.right(w)).red = false
				u.rotateLeft(xp)
				x = u.root
			}
		} else {
			w := u.left(xp)
			if u.isRed(w) {
				u.nd(w).red, u.nd(xp).red = false, true
				u.rotateRight(xp)
				w = u.left(xp)
			}
			if !u.isRed(u.left(w)) && !u.isRed(u.right(w)) {
				u.nd(w).red = true
				x, xp = xp, u.parent(xp)
			} else {
				if !u.isRed(u.left(w)) {
					u.nd(u.right(w)).red, u.nd(w).red = false, true
					u.rotateLeft(w)
					w = u.left(xp)
				}
				u.nd(w).red = u.nd(xp).red
				u.nd(xp).red = false
				u.nd(u.left(w)).red = false
				u.rotateRight(xp)
				x = u.root
			}
		}
	}
	if x != nil {
		u.nd(x).red = false
	}
}
