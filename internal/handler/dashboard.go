package handler

import "net/http"

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) UserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.UserStats(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) TeamStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.TeamStats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) ProjectStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.ProjectStats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) RecentActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.dashboard.RecentActivities(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, activities)
}

func (h *Handler) ProductivityChart(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	chart, err := h.dashboard.ProductivityChart(r.Context(), callerID(r), period)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, chart)
}

func (h *Handler) OnlineUsers(w http.ResponseWriter, r *http.Request) {
	count, err := h.dashboard.OnlineUserCount(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"onlineUsers": count})
}
