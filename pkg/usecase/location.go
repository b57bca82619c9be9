package usecase

import (
	"context"

	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type locationUseCase struct {
	geocoder   interfaces.Geocoder
	repository interfaces.LocationRepository
}

// NewLocation creates a new instance of LocationUseCase
func NewLocation(geocoder interfaces.Geocoder, repository interfaces.LocationRepository) interfaces.LocationUseCase {
	return &locationUseCase{
		geocoder:   geocoder,
		repository: repository,
	}
}

// UpdateUserLocation geocodes the location a user entered in their profile
// and links the user to it. Addresses without a geocoding result are skipped.
func (uc *locationUseCase) UpdateUserLocation(ctx context.Context, event *model.UserSettingsEvent) error {
	logger := ctxlog.From(ctx)
	name := event.UE.Location

	if name == "" {
		return nil
	}

	geocoded, err := uc.repository.IsGeocoded(ctx, name)
	if err != nil {
		return goerr.Wrap(err, "failed to check location", goerr.V("location", name))
	}

	if !geocoded {
		coords, err := uc.geocoder.Geocode(ctx, name)
		if err != nil {
			return goerr.Wrap(err, "failed to geocode location", goerr.V("location", name))
		}
		if coords == nil {
			logger.Info("Location has no geocoding result", "location", name, "user_id", event.UserID)
			return nil
		}

		loc := &model.Location{Name: name, Lat: coords.Lat, Lon: coords.Lng}
		if err := uc.repository.SaveLocation(ctx, loc); err != nil {
			return goerr.Wrap(err, "failed to save location", goerr.V("location", name))
		}
		logger.Info("Location geocoded", "location", name, "lat", loc.Lat, "lon", loc.Lon)
	}

	if event.UserID == 0 {
		return nil
	}
	if err := uc.repository.SetUserLocation(ctx, event.UserID, name); err != nil {
		return goerr.Wrap(err, "failed to link user location",
			goerr.V("location", name),
			goerr.V("user_id", event.UserID),
		)
	}

	return nil
}
