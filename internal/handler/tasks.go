package handler

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/apperror"
	"github.com/sahildeshmukh45/tl/internal/model"
)

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.FindAll(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req model.TaskRequest
	if !h.decode(w, r, &req) {
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	creator := callerID(r)
	t := &model.Task{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       priority,
		Status:         model.TaskTodo,
		ProjectID:      req.ProjectID,
		AssignedToID:   req.AssignedToID,
		CreatedByID:    &creator,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		Tags:           req.Tags,
	}
	if err := h.tasks.Create(r.Context(), t); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, t)
}

// ProjectTasks lists the tasks belonging to a project.
func (h *Handler) ProjectTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.FindByProject(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	t, err := h.tasks.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.writeError(w, apperror.NotFoundf("task %d not found", id))
			return
		}
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}
