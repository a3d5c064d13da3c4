package handler

import (
	"net/http"
	"strconv"

	"github.com/sahildeshmukh45/tl/internal/apperror"
	"github.com/sahildeshmukh45/tl/internal/model"
)

// CaptureScreenshot takes a one-shot screenshot tied to the caller's active
// entry. Unlike the periodic loop, failures here reach the client.
func (h *Handler) CaptureScreenshot(w http.ResponseWriter, r *http.Request) {
	var req model.ManualCaptureRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	userID := callerID(r)
	entry, err := h.tracking.CurrentEntry(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if entry == nil {
		h.writeError(w, apperror.NotFoundf("no active time entry for user %d", userID))
		return
	}

	shot, err := h.capture.CaptureManual(r.Context(), userID, entry.ID, req.Notes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, shot)
}

func (h *Handler) UserScreenshots(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format, want YYYY-MM-DD"})
		return
	}

	shots, err := h.capture.UserScreenshots(r.Context(), callerID(r), start, end)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, shots)
}

func (h *Handler) LatestScreenshots(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	shots, err := h.capture.LatestScreenshots(r.Context(), callerID(r), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, shots)
}

func (h *Handler) TimeEntryScreenshots(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	shots, err := h.capture.TimeEntryScreenshots(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, shots)
}

func (h *Handler) ApproveScreenshot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	shot, err := h.capture.ApproveScreenshot(r.Context(), id, callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, shot)
}

func (h *Handler) DeleteScreenshot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.capture.DeleteScreenshot(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
