package usecase_test

import (
	"context"
	"errors"

	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/contribmap/pkg/domain/types"
)

// MockDirectory is a mock implementation of ContributorDirectory
type MockDirectory struct {
	contributors map[string]types.UserID
	locations    map[types.UserID]*model.ContributorLocation
	findErr      error
	locationErr  error
	findCalls    []string
}

func (m *MockDirectory) FindContributor(ctx context.Context, name string) (types.UserID, error) {
	m.findCalls = append(m.findCalls, name)
	if m.findErr != nil {
		return 0, m.findErr
	}
	return m.contributors[name], nil
}

func (m *MockDirectory) GetUserLocation(ctx context.Context, userID types.UserID) (*model.ContributorLocation, error) {
	if m.locationErr != nil {
		return nil, m.locationErr
	}
	return m.locations[userID], nil
}

// MockSink records popups
type MockSink struct {
	popups []*model.PopupMessage
	err    error
}

func (m *MockSink) AddPopup(ctx context.Context, popup *model.PopupMessage) error {
	if m.err != nil {
		return m.err
	}
	m.popups = append(m.popups, popup)
	return nil
}

type MockNotifyCall struct {
	Kind    types.EventKind
	Payload any
}

// MockNotifier records broadcasts
type MockNotifier struct {
	calls []MockNotifyCall
	err   error
}

func (m *MockNotifier) Notify(ctx context.Context, kind types.EventKind, payload any) error {
	m.calls = append(m.calls, MockNotifyCall{Kind: kind, Payload: payload})
	return m.err
}

// MockGeocoder returns fixed coordinates per address
type MockGeocoder struct {
	results map[string]*model.Coordinates
	err     error
	calls   []string
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*model.Coordinates, error) {
	m.calls = append(m.calls, address)
	if m.err != nil {
		return nil, m.err
	}
	return m.results[address], nil
}

type MockUserLocation struct {
	UserID types.UserID
	Name   string
}

// MockLocationRepository keeps locations in memory
type MockLocationRepository struct {
	locations     map[string]*model.Location
	userLocations []MockUserLocation
	saveErr       error
}

func (m *MockLocationRepository) IsGeocoded(ctx context.Context, name string) (bool, error) {
	_, ok := m.locations[name]
	return ok, nil
}

func (m *MockLocationRepository) SaveLocation(ctx context.Context, loc *model.Location) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.locations == nil {
		m.locations = map[string]*model.Location{}
	}
	m.locations[loc.Name] = loc
	return nil
}

func (m *MockLocationRepository) SetUserLocation(ctx context.Context, userID types.UserID, name string) error {
	m.userLocations = append(m.userLocations, MockUserLocation{UserID: userID, Name: name})
	return nil
}

type MockTokenCall struct {
	UserID types.UserID
	Token  string
}

// MockHookRepository records token updates
type MockHookRepository struct {
	calls    []MockTokenCall
	affected int64
	err      error
}

func (m *MockHookRepository) UpdateAccessToken(ctx context.Context, userID types.UserID, token string) (int64, error) {
	m.calls = append(m.calls, MockTokenCall{UserID: userID, Token: token})
	return m.affected, m.err
}

var errMock = errors.New("mock failure")
