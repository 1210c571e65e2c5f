package handler

import (
	"net/http"

	"skillset/pkg/platform/httputil"
	"skillset/pkg/requestcontext"
)

func (h *Handler) HandleListSkills(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.skills.GetAll(r.Context()))
}

func (h *Handler) HandleGetSkill(w http.ResponseWriter, r *http.Request) {
	res, err := h.skills.GetOne(r.Context(), pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusOK, res)
}

func (h *Handler) HandleSkillExists(w http.ResponseWriter, r *http.Request) {
	res, err := h.skills.Exists(r.Context(), pathParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.respondExists(w, res)
}

func (h *Handler) HandleCreateSkill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SkillRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		h.logger.DebugContext(ctx, "invalid skill body",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	res, err := h.skills.Create(ctx, req.toModel(""))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, res)
}

func (h *Handler) HandleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SkillRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	id := pathParam(r, "id")
	res, err := h.skills.Update(ctx, id, req.toModel(id))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusOK, res)
}

func (h *Handler) HandleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	res, err := h.skills.Delete(r.Context(), pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, res)
}
