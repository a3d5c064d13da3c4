package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sahildeshmukh45/tl/internal/model"
)

// PunchIn opens a time entry for the caller and starts screenshot capture.
func (h *Handler) PunchIn(w http.ResponseWriter, r *http.Request) {
	var req model.PunchInRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	entry, err := h.tracking.PunchIn(r.Context(), callerID(r), req.ProjectID, req.TaskID, req.Notes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, entry)
}

// PunchOut closes the caller's active entry and stops capture.
func (h *Handler) PunchOut(w http.ResponseWriter, r *http.Request) {
	var req model.PunchOutRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	entry, err := h.tracking.PunchOut(r.Context(), callerID(r), req.Notes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) StartLunch(w http.ResponseWriter, r *http.Request) {
	entry, err := h.tracking.StartLunch(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) EndLunch(w http.ResponseWriter, r *http.Request) {
	entry, err := h.tracking.EndLunch(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) StartBreak(w http.ResponseWriter, r *http.Request) {
	entry, err := h.tracking.StartBreak(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) EndBreak(w http.ResponseWriter, r *http.Request) {
	entry, err := h.tracking.EndBreak(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

// CreateManualEntry records a retroactive, already-closed entry.
func (h *Handler) CreateManualEntry(w http.ResponseWriter, r *http.Request) {
	var req model.ManualEntryRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.tracking.CreateManualEntry(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, entry)
}

// CurrentEntry returns the caller's active entry, or null when not punched in.
func (h *Handler) CurrentEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.tracking.CurrentEntry(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) Entries(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format, want YYYY-MM-DD"})
		return
	}

	entries, err := h.tracking.EntriesInRange(r.Context(), callerID(r), start, end)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) TotalHours(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format, want YYYY-MM-DD"})
		return
	}

	total, err := h.tracking.TotalHours(r.Context(), callerID(r), start, end)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]float64{"totalHours": total})
}

func (h *Handler) OvertimeHours(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format, want YYYY-MM-DD"})
		return
	}

	total, err := h.tracking.OvertimeHours(r.Context(), callerID(r), start, end)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]float64{"overtimeHours": total})
}

func (h *Handler) PendingApproval(w http.ResponseWriter, r *http.Request) {
	entries, err := h.tracking.PendingApproval(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// ApproveEntry marks the entry approved by the caller.
func (h *Handler) ApproveEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.tracking.Approve(r.Context(), id, callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.tracking.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid id"}`))
		return 0, false
	}
	return id, true
}
