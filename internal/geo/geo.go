// Package geo handles the user's shared position and the notices shown when
// reading it succeeds or fails.
package geo

import (
	"context"
	"errors"
	"fmt"

	"fachnmchi/internal/models"
)

var (
	// ErrPermissionDenied means the user refused or the lookup failed.
	ErrPermissionDenied = errors.New("geo: position unavailable")
	// ErrUnsupported means the platform has no geolocation at all.
	ErrUnsupported = errors.New("geo: geolocation unsupported")
)

// Position is a point in WGS84 degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate ranges.
func (p Position) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return models.NewValidationError("latitude must be between -90 and 90")
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return models.NewValidationError("longitude must be between -180 and 180")
	}
	return nil
}

// String renders the position the way the client displays it.
func (p Position) String() string {
	return fmt.Sprintf("Latitude: %.6f, Longitude: %.6f", p.Latitude, p.Longitude)
}

// Locator reads the device's current position.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// Locate asks l for the current position and returns the notice to show.
// A nil locator behaves as ErrUnsupported.
func Locate(ctx context.Context, l Locator) (Position, models.Notice, error) {
	if l == nil {
		return Position{}, NoticeFor(ErrUnsupported), ErrUnsupported
	}
	pos, err := l.CurrentPosition(ctx)
	if err != nil {
		return Position{}, NoticeFor(err), err
	}
	if err := pos.Validate(); err != nil {
		return Position{}, NoticeFor(ErrPermissionDenied), err
	}
	return pos, SharedNotice(pos), nil
}

// SharedNotice confirms a shared position.
func SharedNotice(p Position) models.Notice {
	return models.NewNotice("Position partagée", p.String())
}

// NoticeFor maps a lookup error to its notice. Anything other than
// ErrUnsupported is reported as an access failure.
func NoticeFor(err error) models.Notice {
	if errors.Is(err, ErrUnsupported) {
		return models.NewErrorNotice("Non supporté", "La géolocalisation n'est pas supportée par votre navigateur.")
	}
	return models.NewErrorNotice("Erreur", "Impossible d'accéder à votre localisation.")
}

// ParseFailure maps a client-reported failure reason to its error.
// "unsupported" is ErrUnsupported; every other reason is ErrPermissionDenied.
func ParseFailure(reason string) error {
	if reason == "unsupported" {
		return ErrUnsupported
	}
	return ErrPermissionDenied
}
