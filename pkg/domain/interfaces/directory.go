package interfaces

import (
	"context"

	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/contribmap/pkg/domain/types"
)

// ContributorDirectory resolves contributors and their stored geolocation
type ContributorDirectory interface {
	// FindContributor looks up a contributor by exact name. It returns zero when there is no match.
	FindContributor(ctx context.Context, name string) (types.UserID, error)

	// GetUserLocation returns the location linked to a user, or nil when none is stored
	GetUserLocation(ctx context.Context, userID types.UserID) (*model.ContributorLocation, error)
}

// LocationRepository stores geocoded locations and links users to them
type LocationRepository interface {
	// IsGeocoded reports whether the location name is already stored
	IsGeocoded(ctx context.Context, name string) (bool, error)
	SaveLocation(ctx context.Context, loc *model.Location) error
	SetUserLocation(ctx context.Context, userID types.UserID, name string) error
}

// HookRepository stores repository webhooks registered by users
type HookRepository interface {
	// UpdateAccessToken replaces the token on every hook owned by the user and returns the number of hooks updated
	UpdateAccessToken(ctx context.Context, userID types.UserID, token string) (int64, error)
}
