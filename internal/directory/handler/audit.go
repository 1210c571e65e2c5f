package handler

import (
	"net/http"
	"strconv"

	dErrors "skillset/pkg/domain-errors"
	audit "skillset/pkg/platform/audit"
	"skillset/pkg/platform/httputil"
	"skillset/pkg/requestcontext"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 1000
)

// HandleRecentAudit serves GET /audit/recent?limit=N, newest first.
func (h *Handler) HandleRecentAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAuditLimit {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be between 1 and 1000"))
			return
		}
		limit = n
	}

	events, err := h.audit.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list audit events failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}
