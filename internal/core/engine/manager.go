// Package engine runs component processors over a set of managed entities.
// The manager is the canonical owner of its entities' component collections:
// it registers itself as each entity's change observer and routes every
// add/remove to the processor the component's descriptor names.
package engine

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/entforge/entforge/internal/core/entity"
	"github.com/entforge/entforge/internal/core/observability/log"
	"github.com/entforge/entforge/pkg/sequence"
)

var _ entity.Owner = (*Manager)(nil)

// Manager owns entities and their processors. It is not safe for concurrent
// mutation; like the collections it manages, it belongs to one logical
// owner. Update may fan processor work out to goroutines, but processors
// never share component state.
type Manager struct {
	cfg        Config
	log        log.Log
	entities   map[uuid.UUID]*entity.Entity
	processors map[entity.ProcessorType]Processor
	procOrder  []Processor
}

// NewManager builds a manager. A nil logger disables logging.
func NewManager(cfg Config, logger log.Log) *Manager {
	if logger == nil {
		logger = log.Nop()
	}
	return &Manager{
		cfg:        cfg,
		log:        logger,
		entities:   make(map[uuid.UUID]*entity.Entity),
		processors: make(map[entity.ProcessorType]Processor),
	}
}

// Spawn registers e with the manager and takes over its owner slot,
// replacing any previous observer. Components already attached are announced
// to their processors in index order, as if just added.
func (m *Manager) Spawn(e *entity.Entity) error {
	if _, ok := m.entities[e.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyManaged, e.ID())
	}
	m.entities[e.ID()] = e
	e.SetOwner(m)
	for _, c := range e.Components().All() {
		m.routeAdded(e, c)
	}
	m.log.Debug("entity spawned",
		log.String("entity", e.Name()),
		log.Int("components", e.Components().Len()))
	return nil
}

// Despawn releases the entity's owner slot and announces its components to
// their processors as removed, highest index first. The components stay
// attached to the entity.
func (m *Manager) Despawn(id uuid.UUID) error {
	e, ok := m.entities[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntityNotFound, id)
	}
	delete(m.entities, id)
	e.SetOwner(nil)
	components := e.Components()
	for i := components.Len() - 1; i >= 0; i-- {
		c, err := components.Get(i)
		if err != nil {
			return err
		}
		m.routeRemoved(e, c)
	}
	m.log.Debug("entity despawned", log.String("entity", e.Name()))
	return nil
}

// Entity returns a managed entity by id.
func (m *Manager) Entity(id uuid.UUID) (*entity.Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

// Len returns the number of managed entities.
func (m *Manager) Len() int {
	return len(m.entities)
}

// Processor returns the instantiated processor of the given type, if a
// component has ever summoned it.
func (m *Manager) Processor(t entity.ProcessorType) (Processor, bool) {
	p, ok := m.processors[t]
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// Entities iterates the managed entities in unspecified order.
func (m *Manager) Entities() *sequence.Iterator[*entity.Entity] {
	return sequence.FromMap(m.entities)
}

// OnComponentChanged implements entity.Owner. The collection has already
// applied the mutation when this runs, so processors may read it freely.
func (m *Manager) OnComponentChanged(e *entity.Entity, index int, oldComponent, newComponent entity.Component) {
	if oldComponent != nil {
		m.routeRemoved(e, oldComponent)
	}
	if newComponent != nil {
		m.routeAdded(e, newComponent)
	}
}

// Update advances every attached processor by dt, in attach order. With
// cfg.Parallel set the processors run concurrently; each processor only
// sees the components routed to it, so they share no entity state.
func (m *Manager) Update(ctx context.Context, dt float64) error {
	if !m.cfg.Parallel {
		for _, p := range m.procOrder {
			if err := p.Update(ctx, dt); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range m.procOrder {
		g.Go(func() error { return p.Update(ctx, dt) })
	}
	return g.Wait()
}

func (m *Manager) routeAdded(e *entity.Entity, c entity.Component) {
	if p := m.processorFor(entity.DescriptorOf(c)); p != nil {
		p.OnComponentAdded(e, c)
	}
}

func (m *Manager) routeRemoved(e *entity.Entity, c entity.Component) {
	if p := m.processorFor(entity.DescriptorOf(c)); p != nil {
		p.OnComponentRemoved(e, c)
	}
}

// processorFor returns the processor named by d, instantiating it on first
// use. Descriptors without a processor type map to nil, as do processor
// types that fail the interface check (logged once, then remembered).
func (m *Manager) processorFor(d *entity.Descriptor) Processor {
	if d.ProcessorType == nil {
		return nil
	}
	if p, ok := m.processors[d.ProcessorType]; ok {
		return p
	}

	p, err := newProcessor(d.ProcessorType)
	m.processors[d.ProcessorType] = p
	if err != nil {
		m.log.Error("processor attach failed",
			log.String("processor", d.ProcessorType.String()),
			log.Error(err))
		return nil
	}
	m.procOrder = append(m.procOrder, p)
	m.log.Info("processor attached",
		log.String("processor", d.ProcessorType.String()),
		log.String("component", d.Type.String()),
		log.Uint32("component_id", uint32(d.ID)))
	return p
}

func newProcessor(t entity.ProcessorType) (Processor, error) {
	var v any
	if t.Kind() == reflect.Pointer {
		v = reflect.New(t.Elem()).Interface()
	} else {
		v = reflect.Zero(t).Interface()
	}
	p, ok := v.(Processor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAProcessor, t)
	}
	return p, nil
}
