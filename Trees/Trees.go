// Package Trees provides an intrusive red-black tree over caller-owned
// nodes. The tree stores no keys and allocates no memory: callers embed
// Node in their own structs, and the tree only rearranges linkage. Ordering
// and per-subtree augmentation are supplied through Callbacks, so the same
// engine serves plain ordered sets as well as augmented structures such as
// IntervalTree.
package Trees

import "fmt"

// Ptr constrains the pointer type of a node managed by RBTree. RB exposes
// the embedded Node so the engine can reach the linkage of a *T.
type Ptr[T any] interface {
	*T
	RB() *Node[T]
}

// Callbacks parameterizes a RBTree. Implementations must be stateless with
// respect to the tree: the engine may call them at any point during a
// mutation, and it never retains them beyond the tree they were attached to.
type Callbacks[T any] interface {
	// Cmp is a three-way comparison of a and b. It must be a strict total
	// order; the engine treats 0 as "place right", so equal nodes coexist.
	Cmp(a, b *T) int
	// Propagate is invoked once per Insert and at most once per Unlink,
	// after rebalancing has finished, starting at the node whose subtree
	// composition changed first. Augmented trees recompute aggregates from
	// there up to the root; plain trees use NoopCallbacks.
	Propagate(n *T)
	// Rotate is invoked after every single rotation with the old and new
	// top nodes of the rotated pair. Only these two and the new top's
	// parent can have changed subtree composition.
	Rotate(oldTop, newTop *T)
}

// NoopCallbacks implements the augmentation half of Callbacks for trees
// that don't maintain aggregates. Embed it and provide Cmp.
type NoopCallbacks[T any] struct{}

func (NoopCallbacks[T]) Propagate(*T) {}

func (NoopCallbacks[T]) Rotate(*T, *T) {}

// AlreadyLinkedError is panicked by RBTree.Insert when the given node is
// still linked into a tree.
type AlreadyLinkedError struct {
	N any
}

func (e AlreadyLinkedError) Error() string {
	return fmt.Sprintf("Trees: inserting node %v that is already linked", e.N)
}

// NotLinkedError is panicked by RBTree.Unlink when the given node isn't
// linked into the tree.
type NotLinkedError struct {
	N any
}

func (e NotLinkedError) Error() string {
	return fmt.Sprintf("Trees: unlinking node %v that isn't linked", e.N)
}
