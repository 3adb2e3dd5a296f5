// Package counter binds the dhikr state machine to persistence.
package counter

import (
	"context"

	"github.com/sandeepkv93/dhikr/internal/model"
)

// Store is the persistence the counter writes through. Implementations
// swallow their own failures.
type Store interface {
	SaveState(ctx context.Context, state model.State)
	UpdateDailyStats(ctx context.Context, delta int)
}

type Counter struct {
	state model.State
	store Store
}

func New(state model.State, store Store) *Counter {
	if err := state.Validate(); err != nil {
		state = model.NewState()
	}
	return &Counter{state: state, store: store}
}

func (c *Counter) State() model.State {
	return c.state
}

// Increment records one recitation: the transition, the saved state and
// one more count for today, in that order.
func (c *Counter) Increment(ctx context.Context) model.State {
	c.state.Increment()
	c.save(ctx)
	if c.store != nil {
		c.store.UpdateDailyStats(ctx, 1)
	}
	return c.state
}

func (c *Counter) SetType(ctx context.Context, t model.PhraseType) model.State {
	c.state.SetType(t)
	c.save(ctx)
	return c.state
}

func (c *Counter) ToggleMode(ctx context.Context) model.State {
	c.state.ToggleMode()
	c.save(ctx)
	return c.state
}

func (c *Counter) Reset(ctx context.Context) model.State {
	c.state.Reset()
	c.save(ctx)
	return c.state
}

func (c *Counter) CycleDisplayMode(ctx context.Context) model.State {
	c.state.CycleDisplayMode()
	c.save(ctx)
	return c.state
}

func (c *Counter) save(ctx context.Context) {
	if c.store != nil {
		c.store.SaveState(ctx, c.state)
	}
}
