package engine

import (
	"context"

	"github.com/entforge/entforge/internal/core/entity"
)

// Processor reacts to components of one type across all managed entities and
// advances them once per tick. The manager instantiates a processor lazily,
// the first time a component whose descriptor names its type is attached.
type Processor interface {
	OnComponentAdded(e *entity.Entity, c entity.Component)
	OnComponentRemoved(e *entity.Entity, c entity.Component)
	Update(ctx context.Context, dt float64) error
}
