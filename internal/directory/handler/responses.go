package handler

import (
	"fmt"
	"net/http"

	"skillset/internal/directory/models"
	"skillset/pkg/platform/httputil"
	"skillset/pkg/result"
)

// respond renders any manager outcome. status applies to payload-carrying successes.
func (h *Handler) respond(w http.ResponseWriter, status int, o result.Outcome) {
	switch v := o.(type) {
	case result.Success[models.Person]:
		httputil.WriteJSON(w, status, v.Value)
	case result.Success[models.Skill]:
		httputil.WriteJSON(w, status, v.Value)
	case result.Success[[]models.Person]:
		httputil.WriteJSON(w, status, v.Value)
	case result.Success[[]models.Skill]:
		httputil.WriteJSON(w, status, v.Value)
	case result.Deleted:
		w.WriteHeader(http.StatusNoContent)
	case result.ValidationFailure:
		httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, httputil.ErrorResponse{
			Error:       "validation_failed",
			Description: v.Err.Error(),
			Field:       v.Err.Field,
			Kind:        string(v.Err.Kind),
			Params:      v.Err.Params,
		})
	case result.Conflict:
		httputil.WriteErrorResponse(w, http.StatusConflict, httputil.ErrorResponse{
			Error:       "conflict",
			Description: fmt.Sprintf("%s is already taken", v.Field),
			Field:       v.Field,
		})
	case result.NotFound:
		httputil.WriteErrorResponse(w, http.StatusNotFound, httputil.ErrorResponse{
			Error:       "not_found",
			Description: "record not found",
		})
	case result.RepositoryFailure:
		// the manager has already logged the cause
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, httputil.ErrorResponse{Error: "internal_error"})
	default:
		panic(result.Unexpected(o))
	}
}

// respondExists answers a HEAD probe with a bare status.
func (h *Handler) respondExists(w http.ResponseWriter, o result.ExistsResult) {
	switch v := o.(type) {
	case result.Success[bool]:
		if v.Value {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case result.RepositoryFailure:
		w.WriteHeader(http.StatusInternalServerError)
	default:
		panic(result.Unexpected(o))
	}
}
