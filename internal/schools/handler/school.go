package handler

import (
	"encoding/json"
	"net/http"

	"smpid/internal/schools/service"
	httputil "smpid/pkg/http"
	"smpid/pkg/logger"
	"smpid/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type SchoolHandler struct {
	service service.SchoolService
	log     *logger.Logger
}

func NewSchoolHandler(service service.SchoolService, log *logger.Logger) *SchoolHandler {
	return &SchoolHandler{
		service: service,
		log:     log,
	}
}

func (h *SchoolHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var school model.School
	if err := json.NewDecoder(r.Body).Decode(&school); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &school); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, school); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *SchoolHandler) GetByCode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	profile, err := h.service.GetByCode(r.Context(), ps.ByName("code"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByCode", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByCode", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SchoolHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	profiles, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, profiles, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *SchoolHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.SchoolUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	profile, err := h.service.Update(r.Context(), ps.ByName("code"), &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SchoolHandler) ResetContacts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	profile, err := h.service.ResetContacts(r.Context(), ps.ByName("code"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ResetContacts", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "ResetContacts", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SchoolHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("code")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SchoolHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/schools", h.Create)
	router.GET("/api/v1/schools", h.List)
	router.GET("/api/v1/schools/code/:code", h.GetByCode)
	router.PATCH("/api/v1/schools/code/:code", h.Update)
	router.POST("/api/v1/schools/code/:code/contacts/reset", h.ResetContacts)
	router.DELETE("/api/v1/schools/code/:code", h.Delete)
}
