package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/entforge/entforge/internal/core/entity"
)

type motionComponent struct {
	entity.ComponentBase
	dx float64
}

func (*motionComponent) AllowMultipleComponents() {}

func (*motionComponent) DefaultProcessorType() entity.ProcessorType {
	return entity.TypeOf[*motionProcessor]()
}

type motionProcessor struct {
	added   []entity.Component
	removed []entity.Component
	ticks   atomic.Int64
}

func (p *motionProcessor) OnComponentAdded(_ *entity.Entity, c entity.Component) {
	p.added = append(p.added, c)
}

func (p *motionProcessor) OnComponentRemoved(_ *entity.Entity, c entity.Component) {
	p.removed = append(p.removed, c)
}

func (p *motionProcessor) Update(context.Context, float64) error {
	p.ticks.Add(1)
	return nil
}

type glowComponent struct {
	entity.ComponentBase
}

func (*glowComponent) DefaultProcessorType() entity.ProcessorType {
	return entity.TypeOf[*glowProcessor]()
}

type glowProcessor struct {
	ticks atomic.Int64
}

func (p *glowProcessor) OnComponentAdded(*entity.Entity, entity.Component)   {}
func (p *glowProcessor) OnComponentRemoved(*entity.Entity, entity.Component) {}

func (p *glowProcessor) Update(context.Context, float64) error {
	p.ticks.Add(1)
	return nil
}

var errBrokenUpdate = errors.New("broken update")

type brokenComponent struct {
	entity.ComponentBase
}

func (*brokenComponent) DefaultProcessorType() entity.ProcessorType {
	return entity.TypeOf[*brokenProcessor]()
}

type brokenProcessor struct{}

func (p *brokenProcessor) OnComponentAdded(*entity.Entity, entity.Component)   {}
func (p *brokenProcessor) OnComponentRemoved(*entity.Entity, entity.Component) {}

func (p *brokenProcessor) Update(context.Context, float64) error {
	return errBrokenUpdate
}

func motionOf(t *testing.T, m *Manager) *motionProcessor {
	t.Helper()
	p, ok := m.Processor(entity.TypeOf[*motionProcessor]())
	require.True(t, ok)
	return p.(*motionProcessor)
}

func TestManager_Spawn(t *testing.T) {
	t.Run("Announces Existing Components", func(t *testing.T) {
		e := entity.New("mover")
		c := &motionComponent{dx: 1}
		require.NoError(t, e.Components().Add(c))

		m := NewManager(DefaultConfig(), nil)
		require.NoError(t, m.Spawn(e))

		p := motionOf(t, m)
		require.Equal(t, []entity.Component{c}, p.added)
		require.Same(t, m, e.Owner())
		require.Equal(t, 1, m.Len())
	})

	t.Run("Duplicate Spawn Rejected", func(t *testing.T) {
		e := entity.New("mover")
		m := NewManager(DefaultConfig(), nil)
		require.NoError(t, m.Spawn(e))
		require.ErrorIs(t, m.Spawn(e), ErrAlreadyManaged)
	})

	t.Run("Components Without Processor Are Inert", func(t *testing.T) {
		e := entity.New("plain") // only a transform
		m := NewManager(DefaultConfig(), nil)
		require.NoError(t, m.Spawn(e))

		_, ok := m.Processor(entity.TypeOf[*motionProcessor]())
		require.False(t, ok)
	})
}

func TestManager_Routing(t *testing.T) {
	t.Run("Add After Spawn", func(t *testing.T) {
		e := entity.New("mover")
		m := NewManager(DefaultConfig(), nil)
		require.NoError(t, m.Spawn(e))

		c := &motionComponent{dx: 2}
		require.NoError(t, e.Components().Add(c))

		p := motionOf(t, m)
		require.Equal(t, []entity.Component{c}, p.added)
	})

	t.Run("Replace Routes Remove Then Add", func(t *testing.T) {
		e := entity.New("mover")
		old := &motionComponent{dx: 1}
		require.NoError(t, e.Components().Add(old))

		m := NewManager(DefaultConfig(), nil)
		require.NoError(t, m.Spawn(e))

		next := &motionComponent{dx: 2}
		require.NoError(t, e.Components().Set(1, next))

		p := motionOf(t, m)
		require.Equal(t, []entity.Component{old}, p.removed)
		require.Equal(t, []entity.Component{old, next}, p.added)
	})

	t.Run("One Processor Across Entities", func(t *testing.T) {
		m := NewManager(DefaultConfig(), nil)
		a := entity.New("a")
		b := entity.New("b")
		require.NoError(t, a.Components().Add(&motionComponent{}))
		require.NoError(t, b.Components().Add(&motionComponent{}))
		require.NoError(t, m.Spawn(a))
		require.NoError(t, m.Spawn(b))

		p := motionOf(t, m)
		require.Len(t, p.added, 2)
	})

	t.Run("Non-Processor Registration Is Inert", func(t *testing.T) {
		type lameComponent struct{ entity.ComponentBase }
		entity.Register[*lameComponent](entity.WithProcessor[int]())

		e := entity.New("lame")
		require.NoError(t, e.Components().Add(&lameComponent{}))

		m := NewManager(DefaultConfig(), nil)
		require.NoError(t, m.Spawn(e))
		_, ok := m.Processor(entity.TypeOf[int]())
		require.False(t, ok)
	})
}

func TestManager_Despawn(t *testing.T) {
	e := entity.New("mover")
	first := &motionComponent{dx: 1}
	second := &motionComponent{dx: 2}
	require.NoError(t, e.Components().Add(first))
	require.NoError(t, e.Components().Add(second))

	m := NewManager(DefaultConfig(), nil)
	require.NoError(t, m.Spawn(e))
	p := motionOf(t, m)

	require.NoError(t, m.Despawn(e.ID()))

	// removals announced highest index first, owner slot released
	require.Equal(t, []entity.Component{second, first}, p.removed)
	require.Nil(t, e.Owner())
	require.Equal(t, 0, m.Len())
	require.Equal(t, 3, e.Components().Len()) // components stay attached

	// later mutations are no longer routed
	require.NoError(t, e.Components().Add(&motionComponent{dx: 3}))
	require.Len(t, p.added, 2)

	require.ErrorIs(t, m.Despawn(e.ID()), ErrEntityNotFound)
}

func TestManager_Update(t *testing.T) {
	spawnBoth := func(t *testing.T, cfg Config) (*Manager, *motionProcessor, *glowProcessor) {
		t.Helper()
		m := NewManager(cfg, nil)
		e := entity.New("both")
		require.NoError(t, e.Components().Add(&motionComponent{}))
		require.NoError(t, e.Components().Add(&glowComponent{}))
		require.NoError(t, m.Spawn(e))

		gp, ok := m.Processor(entity.TypeOf[*glowProcessor]())
		require.True(t, ok)
		return m, motionOf(t, m), gp.(*glowProcessor)
	}

	t.Run("Sequential", func(t *testing.T) {
		m, mp, gp := spawnBoth(t, DefaultConfig())
		require.NoError(t, m.Update(context.Background(), 0.016))
		require.EqualValues(t, 1, mp.ticks.Load())
		require.EqualValues(t, 1, gp.ticks.Load())
	})

	t.Run("Parallel", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Parallel = true
		m, mp, gp := spawnBoth(t, cfg)
		for range 4 {
			require.NoError(t, m.Update(context.Background(), 0.016))
		}
		require.EqualValues(t, 4, mp.ticks.Load())
		require.EqualValues(t, 4, gp.ticks.Load())
	})

	t.Run("Error Propagates", func(t *testing.T) {
		m := NewManager(DefaultConfig(), nil)
		e := entity.New("broken")
		require.NoError(t, e.Components().Add(&brokenComponent{}))
		require.NoError(t, m.Spawn(e))

		require.ErrorIs(t, m.Update(context.Background(), 0.016), errBrokenUpdate)
	})

	t.Run("No Processors", func(t *testing.T) {
		m := NewManager(DefaultConfig(), nil)
		require.NoError(t, m.Update(context.Background(), 0.016))
	})
}

func TestManager_Entities(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	require.NoError(t, m.Spawn(entity.New("b")))
	require.NoError(t, m.Spawn(entity.New("a")))

	names := make([]string, 0, 2)
	m.Entities().
		Sort(func(x, y *entity.Entity) bool { return x.Name() < y.Name() }).
		Each(func(e *entity.Entity) { names = append(names, e.Name()) })
	require.Equal(t, []string{"a", "b"}, names)
}
