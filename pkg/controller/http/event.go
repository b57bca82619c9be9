package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/usecase"
	"github.com/m-mizutani/contribmap/pkg/utils/errutil"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const maxEventSize = 1 << 20

// EventHandler accepts events forwarded by the portal
type EventHandler struct {
	token   string
	eventUC interfaces.EventUseCase
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(token string, eventUC interfaces.EventUseCase) *EventHandler {
	return &EventHandler{
		token:   token,
		eventUC: eventUC,
	}
}

// Handle dispatches the event named in the URL with the request body as payload
func (h *EventHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)
	name := chi.URLParam(r, "name")

	if !h.authorized(r) {
		logger.Warn("Unauthorized portal event", "event", name)
		writeError(ctx, w, goerr.New("unauthorized"), http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventSize))
	if err != nil {
		writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !json.Valid(body) {
		writeError(ctx, w, goerr.New("invalid JSON payload"), http.StatusBadRequest)
		return
	}

	if err := h.eventUC.Dispatch(ctx, name, json.RawMessage(body)); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnknownEvent):
			logger.Warn("Unknown portal event", "event", name)
			writeError(ctx, w, err, http.StatusNotFound)
		case errors.Is(err, usecase.ErrInvalidPayload):
			logger.Warn("Invalid portal event payload", "event", name, "error", err)
			writeError(ctx, w, err, http.StatusBadRequest)
		default:
			errutil.Handle(ctx, "Failed to handle portal event", err)
			writeError(ctx, w, err, http.StatusInternalServerError)
		}
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{
		"status": "success",
	})
}

func (h *EventHandler) authorized(r *http.Request) bool {
	if h.token == "" {
		return true
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
