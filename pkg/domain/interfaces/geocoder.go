package interfaces

import (
	"context"

	"github.com/m-mizutani/contribmap/pkg/domain/model"
)

// Geocoder resolves a free-form address
type Geocoder interface {
	// Geocode returns nil without error when the address has no result
	Geocode(ctx context.Context, address string) (*model.Coordinates, error)
}
