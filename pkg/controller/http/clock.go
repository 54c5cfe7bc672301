package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/domain/interfaces"
	"github.com/m-mizutani/localstamp/pkg/domain/model"
)

// ClockHandler serves timestamps and the global offset
type ClockHandler struct {
	clockUC interfaces.ClockUseCase
}

// NewClockHandler creates a new ClockHandler
func NewClockHandler(clockUC interfaces.ClockUseCase) *ClockHandler {
	return &ClockHandler{clockUC: clockUC}
}

// HandleNow returns the current timestamp. The optional offset query
// parameter overrides the global offset for this request only.
func (h *ClockHandler) HandleNow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var (
		ts  *model.Timestamp
		err error
	)
	if q := r.URL.Query().Get("offset"); q != "" {
		o, perr := model.ParseOffset(q)
		if perr != nil {
			writeError(w, perr, http.StatusBadRequest)
			return
		}
		ts, err = h.clockUC.NowIn(ctx, o)
	} else {
		ts, err = h.clockUC.Now(ctx)
	}

	if err != nil {
		logger.Error("Failed to build timestamp", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ts)
}

// HandleGetOffset returns the cached global offset
func (h *ClockHandler) HandleGetOffset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.clockUC.Status(r.Context()))
}

// HandlePutOffset replaces the global offset
func (h *ClockHandler) HandlePutOffset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req model.OffsetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var err error
	switch {
	case req.Offset != "":
		_, err = h.clockUC.SetOffset(ctx, req.Offset)
	case req.Hours != nil:
		minutes := 0
		if req.Minutes != nil {
			minutes = *req.Minutes
		}
		_, err = h.clockUC.SetOffsetPair(ctx, *req.Hours, minutes)
	default:
		err = goerr.New("offset or hours is required")
	}

	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, model.ErrWriteLock) {
			status = http.StatusConflict
		}
		logger.Warn("Rejected offset update", "error", err, "status", status)
		writeError(w, err, status)
		return
	}

	logger.Info("Global offset updated via API", "offset", h.clockUC.Status(ctx).Offset.String())
	writeJSON(w, http.StatusOK, h.clockUC.Status(ctx))
}
