package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"cafe-assistant/booking-svc/internal/domain"
	"cafe-assistant/booking-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Assistant service.AssistantInterface
	Catalog   service.CatalogInterface
	Admin     service.AdminServiceInterface
	Receipts  service.ReceiptServiceInterface

	// AdminToken, when set, must be sent as X-Admin-Token on /api/admin.
	AdminToken string
}

func NewHandler(assistant service.AssistantInterface, catalog service.CatalogInterface, admin service.AdminServiceInterface, receipts service.ReceiptServiceInterface) *Handler {
	return &Handler{
		Assistant: assistant,
		Catalog:   catalog,
		Admin:     admin,
		Receipts:  receipts,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/intents", h.handleIntent).Methods("POST")

	r.HandleFunc("/api/menu/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/menu", h.getMenuItems).Methods("GET")

	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/reservations/{id}/qrcode", h.getReservationQRCode).Methods("GET")

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(h.requireAdminToken)
	admin.HandleFunc("/menu", h.getActiveMenu).Methods("GET")
	admin.HandleFunc("/menu/{id}/price", h.setPrice).Methods("PUT")
	admin.HandleFunc("/orders", h.getRecentOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", h.setOrderStatus).Methods("PUT")
	admin.HandleFunc("/reservations", h.getRecentReservations).Methods("GET")
	admin.HandleFunc("/reservations/{id}", h.getReservation).Methods("GET")
	admin.HandleFunc("/reservations/{id}/status", h.setReservationStatus).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "booking-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidPrice), errors.Is(err, service.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrSlotTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("[booking-svc] internal error: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func validIntentKind(kind domain.IntentKind) bool {
	switch kind {
	case domain.IntentText, domain.IntentSelect, domain.IntentSubmit, domain.IntentCancel:
		return true
	}
	return false
}

func (h *Handler) handleIntent(w http.ResponseWriter, r *http.Request) {
	var intent domain.Intent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if intent.UserID == 0 || !validIntentKind(intent.Kind) {
		http.Error(w, "Invalid intent payload", http.StatusBadRequest)
		return
	}

	result, err := h.Assistant.Handle(r.Context(), intent)
	if err != nil {
		log.Printf("[booking-svc] intent of user %d failed: %v", intent.UserID, err)
		http.Error(w, "Temporarily unavailable, please retry", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) getMenuItems(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}
	items, err := h.Catalog.Items(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	png, err := h.Receipts.OrderQRCode(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writePNG(w, png)
}

func (h *Handler) getReservationQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	png, err := h.Receipts.ReservationQRCode(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writePNG(w, png)
}
