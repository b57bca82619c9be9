package usecase

import (
	"context"

	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type accountUseCase struct {
	hooks interfaces.HookRepository
}

// NewAccount creates a new instance of AccountUseCase
func NewAccount(hooks interfaces.HookRepository) interfaces.AccountUseCase {
	return &accountUseCase{hooks: hooks}
}

// UpdateAccessToken stores a refreshed external-login token on the user's repository hooks
func (uc *accountUseCase) UpdateAccessToken(ctx context.Context, event *model.AccessTokenEvent) error {
	if event.UserID == 0 || event.AccessToken == "" {
		return nil
	}

	n, err := uc.hooks.UpdateAccessToken(ctx, event.UserID, event.AccessToken)
	if err != nil {
		return goerr.Wrap(err, "failed to update hook access token", goerr.V("user_id", event.UserID))
	}

	ctxlog.From(ctx).Info("Hook access tokens updated", "user_id", event.UserID, "hooks", n)
	return nil
}
