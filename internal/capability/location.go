// Package capability abstracts the platform services the browser provides:
// geolocation and speech recognition. Fakes stand in for them in tests.
package capability

import (
	"context"
	"errors"
	"fmt"

	"healthassist/backend/internal/model"
)

// ErrLocationUnavailable is returned when no position can be obtained.
var ErrLocationUnavailable = errors.New("location unavailable")

// Locator yields the user's current position once.
type Locator interface {
	CurrentPosition(ctx context.Context) (model.Position, error)
}

// FixedLocator always reports the same position.
type FixedLocator model.Position

func (l FixedLocator) CurrentPosition(ctx context.Context) (model.Position, error) {
	if err := ctx.Err(); err != nil {
		return model.Position{}, err
	}
	return model.Position(l), nil
}

// UnavailableLocator always fails with Reason.
type UnavailableLocator struct {
	Reason string
}

func (l UnavailableLocator) CurrentPosition(context.Context) (model.Position, error) {
	if l.Reason == "" {
		return model.Position{}, ErrLocationUnavailable
	}
	return model.Position{}, fmt.Errorf("%w: %s", ErrLocationUnavailable, l.Reason)
}

// LocatorFor returns a FixedLocator for pos, or an UnavailableLocator
// carrying reason when pos is nil.
func LocatorFor(pos *model.Position, reason string) Locator {
	if pos == nil {
		return UnavailableLocator{Reason: reason}
	}
	return FixedLocator(*pos)
}
