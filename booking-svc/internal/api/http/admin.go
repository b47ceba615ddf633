package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"

	"cafe-assistant/booking-svc/internal/service"
)

// requireAdminToken rejects admin calls that do not carry the shared secret.
// The identity headers below are only trusted once this check passes.
func (h *Handler) requireAdminToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.AdminToken != "" &&
			subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Admin-Token")), []byte(h.AdminToken)) != 1 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// actorFromRequest reads the caller identity set by the chat front end.
func actorFromRequest(r *http.Request) service.Actor {
	userID, _ := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
	chatID, _ := strconv.ParseInt(r.Header.Get("X-Chat-ID"), 10, 64)
	return service.Actor{UserID: userID, ChatID: chatID}
}

func (h *Handler) getActiveMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Admin.ActiveMenu(r.Context(), actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) setPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var body struct {
		Price string `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	item, err := h.Admin.SetPrice(r.Context(), actorFromRequest(r), id, body.Price)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) getRecentOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Admin.RecentOrders(r.Context(), actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	order, err := h.Admin.Order(r.Context(), actorFromRequest(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var body statusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Admin.SetOrderStatus(r.Context(), actorFromRequest(r), id, body.Status); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getRecentReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Admin.RecentReservations(r.Context(), actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	reservation, err := h.Admin.Reservation(r.Context(), actorFromRequest(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *Handler) setReservationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var body statusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Admin.SetReservationStatus(r.Context(), actorFromRequest(r), id, body.Status); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
