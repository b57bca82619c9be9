package usecase

import (
	"context"
	"html"
	"strconv"

	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/contribmap/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Localization keys used by the notification use case
const (
	MsgWebhookPush     = "webhook_push_message"
	MsgProjectApproved = "project_approved_message"
	MsgCommitSingular  = "commit_singular"
	MsgCommitPlural    = "commit_plural"
)

type notificationUseCase struct {
	directory interfaces.ContributorDirectory
	localizer interfaces.Localizer
	sink      interfaces.PopupSink
	notifier  interfaces.Notifier
}

// NewNotification creates a new instance of NotificationUseCase
func NewNotification(
	directory interfaces.ContributorDirectory,
	localizer interfaces.Localizer,
	sink interfaces.PopupSink,
	notifier interfaces.Notifier,
) interfaces.NotificationUseCase {
	return &notificationUseCase{
		directory: directory,
		localizer: localizer,
		sink:      sink,
		notifier:  notifier,
	}
}

// HandlePush broadcasts a push and places a popup at the sender's location.
// An unknown sender or missing location renders at 0/0 with an empty name.
func (uc *notificationUseCase) HandlePush(ctx context.Context, event *model.PushEvent) error {
	uc.broadcast(ctx, types.EventKindPush, event)

	userID := uc.findContributor(ctx, event.Sender.Login)
	location := uc.userLocation(ctx, userID)

	count := strconv.Itoa(event.CommitCount()) + " " + uc.commitUnit(event.CommitCount())

	// "[x] pushed [y] to: [z]"
	message := uc.localizer.Render(MsgWebhookPush, map[string]string{
		"x": strong(event.Sender.Login),
		"y": strong(count),
		"z": strong(event.Repository.FullName),
	})

	return uc.addPopup(ctx, location, message)
}

// HandleProjectSubmitted broadcasts a newly submitted project
func (uc *notificationUseCase) HandleProjectSubmitted(ctx context.Context, event *model.ProjectEvent) error {
	uc.broadcast(ctx, types.EventKindProjectSubmitted, event)
	return nil
}

// HandleProjectApproved broadcasts an approved project and places a popup at the author's location
func (uc *notificationUseCase) HandleProjectApproved(ctx context.Context, event *model.ProjectEvent) error {
	uc.broadcast(ctx, types.EventKindProjectApproved, event)

	location := uc.userLocation(ctx, event.ProjectAuthor)

	// "[x] submitted a new project: [y]"
	message := uc.localizer.Render(MsgProjectApproved, map[string]string{
		"x": strong(event.ProjectUser),
		"y": strong(event.FullName()),
	})

	return uc.addPopup(ctx, location, message)
}

func (uc *notificationUseCase) broadcast(ctx context.Context, kind types.EventKind, payload any) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Notify(ctx, kind, payload); err != nil {
		ctxlog.From(ctx).Warn("Failed to broadcast notification",
			"kind", kind,
			"error", err,
		)
	}
}

func (uc *notificationUseCase) findContributor(ctx context.Context, login string) types.UserID {
	logger := ctxlog.From(ctx)

	userID, err := uc.directory.FindContributor(ctx, login)
	if err != nil {
		logger.Warn("Failed to look up contributor", "login", login, "error", err)
		return 0
	}
	if userID == 0 {
		logger.Warn("Contributor not found", "login", login)
	}
	return userID
}

// userLocation never fails: lookup errors and misses yield the zero location
func (uc *notificationUseCase) userLocation(ctx context.Context, userID types.UserID) model.ContributorLocation {
	logger := ctxlog.From(ctx)

	if userID == 0 {
		return model.ContributorLocation{}
	}

	location, err := uc.directory.GetUserLocation(ctx, userID)
	if err != nil {
		logger.Warn("Failed to get user location", "user_id", userID, "error", err)
		return model.ContributorLocation{}
	}
	if location == nil {
		logger.Warn("User has no location", "user_id", userID)
		return model.ContributorLocation{}
	}
	return *location
}

func (uc *notificationUseCase) commitUnit(count int) string {
	if count == 1 {
		return uc.localizer.Render(MsgCommitSingular, nil)
	}
	return uc.localizer.Render(MsgCommitPlural, nil)
}

func (uc *notificationUseCase) addPopup(ctx context.Context, location model.ContributorLocation, message string) error {
	popup := &model.PopupMessage{
		Lat: location.Lat,
		Lon: location.Lon,
		Msg: "<p>" + html.EscapeString(location.Name) + "</p><small>" + message + "</small>",
	}

	if err := uc.sink.AddPopup(ctx, popup); err != nil {
		return goerr.Wrap(err, "failed to add popup",
			goerr.V("lat", popup.Lat),
			goerr.V("lon", popup.Lon),
		)
	}

	ctxlog.From(ctx).Debug("Popup added", "lat", popup.Lat, "lon", popup.Lon)
	return nil
}

func strong(s string) string {
	return "<strong>" + html.EscapeString(s) + "</strong>"
}
