package handler

import (
	"net/http"

	"skillset/pkg/platform/httputil"
	"skillset/pkg/requestcontext"
)

func (h *Handler) HandleListPeople(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.people.GetAll(r.Context()))
}

func (h *Handler) HandleGetPerson(w http.ResponseWriter, r *http.Request) {
	res, err := h.people.GetOne(r.Context(), pathParam(r, "name"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusOK, res)
}

func (h *Handler) HandlePersonExists(w http.ResponseWriter, r *http.Request) {
	res, err := h.people.Exists(r.Context(), pathParam(r, "name"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.respondExists(w, res)
}

func (h *Handler) HandleCreatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req PersonRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		h.logger.DebugContext(ctx, "invalid person body",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	res, err := h.people.Create(ctx, req.toModel())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, res)
}

func (h *Handler) HandleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req PersonRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.people.Update(ctx, pathParam(r, "name"), req.toModel())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusOK, res)
}

func (h *Handler) HandleDeletePerson(w http.ResponseWriter, r *http.Request) {
	res, err := h.people.Delete(r.Context(), pathParam(r, "name"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, res)
}
