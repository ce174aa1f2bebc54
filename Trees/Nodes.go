package Trees

// Node is the linkage embedded in every node managed by a RBTree. The zero
// value is an unlinked node. It carries no key; the embedding type owns the
// key and the RBTree orders nodes through Callbacks.Cmp.
// A Node mustn't be copied while linked.
type Node[T any] struct {
	p, l, r *T
	red     bool
}

// Parent of u, nil for the root.
// Time: O(1); Space: O(1)
func (u *Node[T]) Parent() *T {
	return u.p
}

// Left child of u, nil if absent.
// Time: O(1); Space: O(1)
func (u *Node[T]) Left() *T {
	return u.l
}

// Right child of u, nil if absent.
// Time: O(1); Space: O(1)
func (u *Node[T]) Right() *T {
	return u.r
}

// linked reports whether u is attached to anything. The root of a 1 node
// tree has all nil links, so RBTree additionally compares against its root
// where the distinction matters.
func (u *Node[T]) linked() bool {
	return u.p != nil || u.l != nil || u.r != nil
}

// reset returns u to the free-standing state.
func (u *Node[T]) reset() {
	u.p, u.l, u.r, u.red = nil, nil, nil, false
}
