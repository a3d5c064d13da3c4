package handler

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/apperror"
	"github.com/sahildeshmukh45/tl/internal/model"
)

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.FindAll(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req model.ProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	p := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		Priority:    priority,
		Status:      model.ProjectActive,
		ManagerID:   req.ManagerID,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		ClientName:  req.ClientName,
	}
	if err := h.projects.Create(r.Context(), p); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.projects.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.writeError(w, apperror.NotFoundf("project %d not found", id))
			return
		}
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}
