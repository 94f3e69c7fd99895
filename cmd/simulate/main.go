// Command simulate spins up a manager with a handful of moving entities and
// runs a fixed number of ticks. It exists to exercise the full path: config,
// registry, collection mutation, owner notification, processor updates.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/entforge/entforge/internal/core/engine"
	"github.com/entforge/entforge/internal/core/entity"
	"github.com/entforge/entforge/internal/core/observability/log"
)

// VelocityComponent moves its entity's transform every tick.
type VelocityComponent struct {
	entity.ComponentBase

	Linear entity.Vec3
}

func (*VelocityComponent) DefaultProcessorType() entity.ProcessorType {
	return entity.TypeOf[*MovementProcessor]()
}

// MovementProcessor integrates velocities into transform positions.
type MovementProcessor struct {
	moving []*entity.Entity
}

func (p *MovementProcessor) OnComponentAdded(e *entity.Entity, _ entity.Component) {
	p.moving = append(p.moving, e)
}

func (p *MovementProcessor) OnComponentRemoved(e *entity.Entity, _ entity.Component) {
	for i, cur := range p.moving {
		if cur == e {
			p.moving = append(p.moving[:i], p.moving[i+1:]...)
			return
		}
	}
}

func (p *MovementProcessor) Update(_ context.Context, dt float64) error {
	for _, e := range p.moving {
		t := e.Transform()
		if t == nil {
			continue
		}
		if v, ok := entity.Get[*VelocityComponent](e); ok {
			t.Position = t.Position.Add(v.Linear.Scale(dt))
		}
	}
	return nil
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the engine config file")
	entities := flag.Int("entities", 8, "number of entities to spawn")
	ticks := flag.Int("ticks", 120, "number of update ticks to run")
	flag.Parse()

	cfg, err := engine.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "using defaults: %v\n", err)
		cfg = engine.DefaultConfig()
	}

	logger := log.New(cfg.Level())
	mgr := engine.NewManager(cfg, logger)

	for i := 0; i < *entities; i++ {
		e := entity.New(fmt.Sprintf("mover-%02d", i))
		v := &VelocityComponent{Linear: entity.Vec3{X: float64(i), Y: 1}}
		if err = e.Components().Add(v); err != nil {
			logger.Error("component attach failed", log.String("entity", e.Name()), log.Error(err))
			os.Exit(1)
		}
		if err = mgr.Spawn(e); err != nil {
			logger.Error("spawn failed", log.String("entity", e.Name()), log.Error(err))
			os.Exit(1)
		}
	}

	ctx := context.Background()
	for i := 0; i < *ticks; i++ {
		if err = mgr.Update(ctx, cfg.FixedDelta); err != nil {
			logger.Error("update failed", log.Int("tick", i), log.Error(err))
			os.Exit(1)
		}
	}

	mgr.Entities().
		Sort(func(a, b *entity.Entity) bool { return a.Name() < b.Name() }).
		Each(func(e *entity.Entity) {
			t := e.Transform()
			logger.Info("final position",
				log.String("entity", e.Name()),
				log.Float64("x", t.Position.X),
				log.Float64("y", t.Position.Y))
		})
}
