package IntervalTree

import (
	"testing"

	"github.com/g-m-twostay/go-intervals/Trees"
	"github.com/stretchr/testify/require"
)

func TestIterator_StateMachine(t *testing.T) {
	r := require.New(t)

	tree := New[int, uint32]()
	for _, s := range [][2]int{{1, 5}, {3, 7}, {10, 12}} {
		tree.Insert(NewNode[int, uint32](s[0], s[1]))
	}

	it := tree.Iterate(4, 11)
	first := it.First()
	r.NotNil(first)
	r.Equal(1, first.Low())
	r.Equal(5, first.High())

	second := it.Next()
	r.NotNil(second)
	r.Equal(3, second.Low())

	third := it.Next()
	r.NotNil(third)
	r.Equal(10, third.Low())

	r.Nil(it.Next())
	// exhausted is terminal
	r.Nil(it.Next())
	r.Nil(it.Next())

	// a fresh cursor over the same tree is unaffected
	it2 := tree.Iterate(20, 30)
	r.Nil(it2.First())
	r.Nil(it2.Next())

	empty := New[int, uint32]()
	it3 := empty.Iterate(0, 100)
	r.Nil(it3.First())
	r.Nil(it3.Next())
}

// The iterator keeps scanning past in-order nodes that miss the query: the
// successors of [0,9] are [2,3] and [4,5], both below the query range, and
// the next match [6,9] lies beyond them in the traversal.
func TestIterator_SkipsNonOverlappingSuccessor(t *testing.T) {
	r := require.New(t)

	tree := New[int, uint32]()
	spans := [][2]int{{0, 9}, {2, 3}, {4, 5}, {6, 9}, {10, 11}}
	for _, s := range spans {
		tree.Insert(NewNode[int, uint32](s[0], s[1]))
	}

	var got [][2]int
	it := tree.Iterate(6, 8)
	for n := it.First(); n != nil; n = it.Next() {
		got = append(got, [2]int{n.Low(), n.High()})
	}
	r.Equal([][2]int{{0, 9}, {6, 9}}, got)
}

func TestTree_Preconditions(t *testing.T) {
	r := require.New(t)

	r.PanicsWithError(
		InvalidIntervalError[int]{5, 3}.Error(),
		func() { NewNode[int, uint32](5, 3) },
	)

	tree := New[int, uint32]()
	n := NewNode[int, uint32](1, 2)
	tree.Insert(n)
	r.Panics(func() { tree.Insert(n) })

	m := NewNode[int, uint32](3, 4)
	r.Panics(func() { tree.Remove(m) })

	tree.Remove(n)
	r.Panics(func() { tree.Remove(n) })

	// the panic values are the engine's typed errors
	defer func() {
		_, ok := recover().(Trees.AlreadyLinkedError)
		r.True(ok)
	}()
	tree.Insert(m)
	tree.Insert(m)
}
