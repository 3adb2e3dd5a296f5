package prayer

import (
	"context"
	"errors"
	"time"
)

var ErrLocationUnavailable = errors.New("prayer: location unavailable")

// Locator resolves the device position.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// StaticLocator reports a configured position. A zero value has no
// position and always fails.
type StaticLocator struct {
	Coords *Coordinates
}

func (s StaticLocator) Locate(context.Context) (Coordinates, error) {
	if s.Coords == nil {
		return Coordinates{}, ErrLocationUnavailable
	}
	return *s.Coords, nil
}

type LocatorFunc func(ctx context.Context) (Coordinates, error)

func (f LocatorFunc) Locate(ctx context.Context) (Coordinates, error) {
	return f(ctx)
}

// ResolveCoordinates waits at most timeout for locator and falls back
// to Mecca when the position is missing, invalid, or late.
func ResolveCoordinates(ctx context.Context, locator Locator, timeout time.Duration) Coordinates {
	if locator == nil {
		return Mecca
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		coords Coordinates
		err    error
	}
	done := make(chan result, 1)
	go func() {
		c, err := locator.Locate(ctx)
		done <- result{coords: c, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil || !r.coords.Valid() {
			return Mecca
		}
		return r.coords
	case <-ctx.Done():
		return Mecca
	}
}
