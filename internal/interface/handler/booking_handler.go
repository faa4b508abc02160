package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/usecase"
	"roomcast-service/pkg/logger"
)

// BookingHandler is the thin request layer over the reservation engine.
type BookingHandler struct {
	booking      *usecase.BookingService
	availability *usecase.AvailabilityService
	pricing      *usecase.PricingService
	logger       logger.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(
	booking *usecase.BookingService,
	availability *usecase.AvailabilityService,
	pricing *usecase.PricingService,
	logger logger.Logger,
) *BookingHandler {
	return &BookingHandler{
		booking:      booking,
		availability: availability,
		pricing:      pricing,
		logger:       logger,
	}
}

// Register mounts the API routes
func (h *BookingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/availability", h.searchAvailability)
	mux.HandleFunc("POST /api/v1/reservations", h.holdReservation)
	mux.HandleFunc("POST /api/v1/reservations/{id}/confirm", h.confirmReservation)
	mux.HandleFunc("POST /api/v1/reservations/{id}/checkin", h.checkIn)
	mux.HandleFunc("GET /api/v1/reservations/{id}/checkout-preview", h.checkoutPreview)
	mux.HandleFunc("POST /api/v1/reservations/{id}/checkout", h.checkOut)
	mux.HandleFunc("POST /api/v1/reservations/{id}/cancel", h.cancelReservation)
	mux.HandleFunc("DELETE /api/v1/reservations/{id}", h.purgeReservation)
	mux.HandleFunc("GET /api/v1/rate-rules", h.listRules)
	mux.HandleFunc("POST /api/v1/rate-rules", h.createRule)
	mux.HandleFunc("PUT /api/v1/rate-rules/{id}", h.updateRule)
	mux.HandleFunc("DELETE /api/v1/rate-rules/{id}", h.deleteRule)
}

type holdRequest struct {
	CustomerID uint      `json:"customerId"`
	RoomID     uint      `json:"roomId"`
	Checkin    time.Time `json:"checkin"`
	Checkout   time.Time `json:"checkout"`
	Adults     int       `json:"adults"`
	Children   int       `json:"children"`
}

func (h *BookingHandler) holdReservation(w http.ResponseWriter, r *http.Request) {
	var req holdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reservation, err := h.booking.HoldReservation(r.Context(), req.CustomerID, req.RoomID, req.Checkin, req.Checkout, req.Adults, req.Children)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

type confirmRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	PaymentRef string `json:"paymentRef"`
}

func (h *BookingHandler) confirmReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	contact := entity.GuestContact{Name: req.Name, Phone: req.Phone, Email: req.Email}
	reservation, err := h.booking.ConfirmReservation(r.Context(), id, contact, req.PaymentRef)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

type checkInRequest struct {
	RoomID        uint       `json:"roomId"`
	ActualCheckin *time.Time `json:"actualCheckin,omitempty"`
	GuestList     string     `json:"guestList,omitempty"`
}

func (h *BookingHandler) checkIn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.booking.CheckIn(r.Context(), id, req.RoomID, req.ActualCheckin, req.GuestList); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) checkoutPreview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var at *time.Time
	if raw := r.URL.Query().Get("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		at = &t
	}

	settlement, err := h.booking.ComputeCheckoutPreview(r.Context(), id, at)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}

type checkOutRequest struct {
	PaymentMethod  string                 `json:"paymentMethod"`
	ManualPenalty  float64                `json:"manualPenalty,omitempty"`
	ActualCheckout *time.Time             `json:"actualCheckout,omitempty"`
	FinalServices  []*entity.ServiceUsage `json:"finalServices,omitempty"`
}

func (h *BookingHandler) checkOut(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req checkOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.booking.CheckOut(r.Context(), id, req.FinalServices, req.PaymentMethod, req.ManualPenalty, req.ActualCheckout); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type requestorRequest struct {
	RequestorID uint `json:"requestorId"`
}

func (h *BookingHandler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req requestorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.booking.CancelReservation(r.Context(), id, req.RequestorID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) purgeReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	requestorID, err := strconv.ParseUint(r.URL.Query().Get("requestorId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.booking.PurgePendingReservation(r.Context(), id, uint(requestorID)); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) searchAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	checkin, err1 := time.Parse(time.RFC3339, query.Get("checkin"))
	checkout, err2 := time.Parse(time.RFC3339, query.Get("checkout"))
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, errors.New("checkin and checkout must be RFC3339 timestamps"))
		return
	}

	var roomTypeID uint
	if raw := query.Get("roomTypeId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		roomTypeID = uint(parsed)
	}
	adults, _ := strconv.Atoi(query.Get("adults"))
	children, _ := strconv.Atoi(query.Get("children"))

	rooms, err := h.availability.SearchAvailability(r.Context(), roomTypeID, adults, children, checkin, checkout)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

type ruleRequest struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Kind      string    `json:"kind"`
	Value     float64   `json:"value"`
}

func (h *BookingHandler) listRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.pricing.ListRules(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

func (h *BookingHandler) createRule(w http.ResponseWriter, r *http.Request) {
	var req ruleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rule := &entity.RateAdjustmentRule{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Kind:      entity.RateAdjustmentKind(req.Kind),
		Value:     req.Value,
	}
	if err := h.pricing.CreateRule(r.Context(), rule); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

func (h *BookingHandler) updateRule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req ruleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rule := &entity.RateAdjustmentRule{
		ID:        id,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Kind:      entity.RateAdjustmentKind(req.Kind),
		Value:     req.Value,
	}
	if err := h.pricing.UpdateRule(r.Context(), rule); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (h *BookingHandler) deleteRule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.pricing.DeleteRule(r.Context(), id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeDomainError maps domain errors onto HTTP statuses: conflicts to 409,
// stale-state and validation to 422/400, not-found to 404, ownership to 403.
func (h *BookingHandler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrRoomUnavailable), errors.Is(err, entity.ErrOverlappingRule):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, entity.ErrNotPending),
		errors.Is(err, entity.ErrNotConfirmed),
		errors.Is(err, entity.ErrNotCheckedIn),
		errors.Is(err, entity.ErrInvalidStateForCancellation),
		errors.Is(err, entity.ErrRoomNotReady):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, entity.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, entity.ErrNotOwner):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, entity.ErrInvalidRange),
		errors.Is(err, entity.ErrInvalidStay),
		errors.Is(err, entity.ErrInvalidOccupancy):
		writeError(w, http.StatusBadRequest, err)
	default:
		h.logger.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
