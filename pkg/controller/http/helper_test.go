package http_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/contribmap/pkg/domain/types"
	"github.com/m-mizutani/contribmap/pkg/infra/l10n"
	"github.com/m-mizutani/contribmap/pkg/infra/popup"
	"github.com/m-mizutani/contribmap/pkg/usecase"
	"github.com/m-mizutani/gt"
)

// staticDirectory knows a single contributor
type staticDirectory struct{}

func (staticDirectory) FindContributor(ctx context.Context, name string) (types.UserID, error) {
	if name == "testuser" {
		return 1, nil
	}
	return 0, nil
}

func (staticDirectory) GetUserLocation(ctx context.Context, userID types.UserID) (*model.ContributorLocation, error) {
	if userID == 1 {
		return &model.ContributorLocation{Name: "Test City", Lat: 10, Lon: 20}, nil
	}
	return nil, nil
}

type nopGeocoder struct{}

func (nopGeocoder) Geocode(ctx context.Context, address string) (*model.Coordinates, error) {
	return nil, nil
}

type nopLocations struct{}

func (nopLocations) IsGeocoded(ctx context.Context, name string) (bool, error) {
	return false, nil
}

func (nopLocations) SaveLocation(ctx context.Context, loc *model.Location) error {
	return nil
}

func (nopLocations) SetUserLocation(ctx context.Context, userID types.UserID, name string) error {
	return nil
}

type nopHooks struct{}

func (nopHooks) UpdateAccessToken(ctx context.Context, userID types.UserID, token string) (int64, error) {
	return 0, nil
}

type testApp struct {
	hub          *popup.Hub
	notification interfaces.NotificationUseCase
	webhook      interfaces.WebhookUseCase
	events       interfaces.EventUseCase
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	catalog, err := l10n.New()
	gt.NoError(t, err)

	hub := popup.New()
	notification := usecase.NewNotification(staticDirectory{}, catalog, hub, nil)
	events := usecase.NewEvents(
		notification,
		usecase.NewLocation(nopGeocoder{}, nopLocations{}),
		usecase.NewAccount(nopHooks{}),
	)

	return &testApp{
		hub:          hub,
		notification: notification,
		webhook:      usecase.NewWebhook(notification),
		events:       events,
	}
}
