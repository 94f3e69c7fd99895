package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntity_Identity(t *testing.T) {
	a := New("a")
	b := New("b")
	require.NotEqual(t, a.ID(), b.ID())

	require.Equal(t, "a", a.Name())
	a.SetName("renamed")
	require.Equal(t, "renamed", a.Name())
}

func TestGet(t *testing.T) {
	t.Run("First Assignable Wins", func(t *testing.T) {
		e := New("player")
		first := &tagComponent{label: "first"}
		second := &tagComponent{label: "second"}
		require.NoError(t, e.Components().Add(first))
		require.NoError(t, e.Components().Add(second))

		got, ok := Get[*tagComponent](e)
		require.True(t, ok)
		require.Same(t, first, got)
	})

	t.Run("Interface Target", func(t *testing.T) {
		e := New("player")
		tag := &tagComponent{label: "only"}
		require.NoError(t, e.Components().Add(tag))

		got, ok := Get[MultiComponent](e)
		require.True(t, ok)
		require.Same(t, tag, got)
	})

	t.Run("Absent", func(t *testing.T) {
		e := New("player")
		_, ok := Get[*scriptComponent](e)
		require.False(t, ok)
	})

	t.Run("Transform Accessor Matches Generic Lookup", func(t *testing.T) {
		e := New("player")
		got, ok := Get[*TransformComponent](e)
		require.True(t, ok)
		require.Same(t, e.Transform(), got)
	})
}

func TestGetOrCreate(t *testing.T) {
	t.Run("Returns Existing", func(t *testing.T) {
		e := New("player")
		existing := &scriptComponent{name: "existing"}
		require.NoError(t, e.Components().Add(existing))

		owner := &recordingOwner{}
		e.SetOwner(owner)

		got, err := GetOrCreate[*scriptComponent](e)
		require.NoError(t, err)
		require.Same(t, existing, got)
		require.Empty(t, owner.changes) // no mutation happened
	})

	t.Run("Creates And Attaches", func(t *testing.T) {
		e := New("player")
		owner := &recordingOwner{}
		e.SetOwner(owner)

		got, err := GetOrCreate[*scriptComponent](e)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, 2, e.Components().Len())

		last, err := e.Components().Get(1)
		require.NoError(t, err)
		require.Same(t, got, last)

		// attached through the normal Add path
		require.Len(t, owner.changes, 1)
		require.Equal(t, changeRecord{index: 1, prev: nil, next: Component(got)}, owner.changes[0])
	})
}

func TestAll(t *testing.T) {
	t.Run("Repeatable Traversal", func(t *testing.T) {
		e := New("player")
		require.NoError(t, e.Components().Add(&tagComponent{label: "a"}))
		require.NoError(t, e.Components().Add(&tagComponent{label: "b"}))

		seq := All[*tagComponent](e)
		for range 2 {
			labels := make([]string, 0, 2)
			for tag := range seq {
				labels = append(labels, tag.label)
			}
			require.Equal(t, []string{"a", "b"}, labels)
		}
	})

	t.Run("Early Break", func(t *testing.T) {
		e := New("player")
		require.NoError(t, e.Components().Add(&tagComponent{label: "a"}))
		require.NoError(t, e.Components().Add(&tagComponent{label: "b"}))

		var first string
		for tag := range All[*tagComponent](e) {
			first = tag.label
			break
		}
		require.Equal(t, "a", first)
	})

	t.Run("Sees Mutations Between Traversals", func(t *testing.T) {
		e := New("player")
		seq := All[*tagComponent](e)

		count := 0
		for range seq {
			count++
		}
		require.Equal(t, 0, count)

		require.NoError(t, e.Components().Add(&tagComponent{label: "late"}))
		for range seq {
			count++
		}
		require.Equal(t, 1, count)
	})
}
