package http

import (
	"encoding/json"
	"net/http"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"
)

type createBookingRequest struct {
	VehicleID          int32   `json:"vehicle_id" validate:"required,gt=0"`
	ResellerID         *int32  `json:"reseller_id" validate:"omitempty,gt=0"`
	PickupDate         string  `json:"pickup_date" validate:"required"`
	ReturnDate         string  `json:"return_date" validate:"required"`
	UpchargePercentage float64 `json:"upcharge_percentage" validate:"gte=0,lte=100"`
}

type updateDatesRequest struct {
	PickupDate string `json:"pickup_date" validate:"required"`
	ReturnDate string `json:"return_date" validate:"required"`
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	pickup, err := parseDate(req.PickupDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	ret, err := parseDate(req.ReturnDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	claims, _ := ClaimsFromContext(r.Context())
	in := service.CreateBookingInput{
		VehicleID:          req.VehicleID,
		UserID:             claims.UserID,
		PickupDate:         pickup,
		ReturnDate:         ret,
		UpchargePercentage: req.UpchargePercentage,
	}
	// A reseller booking on behalf of a customer carries its own ID; a
	// customer can also book through a named reseller.
	if claims.Role == domain.UserRoleReseller {
		id := claims.UserID
		in.ResellerID = &id
	} else if req.ResellerID != nil {
		in.ResellerID = req.ResellerID
	}

	booking, err := h.bookingService.CreateBooking(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	claims, _ := ClaimsFromContext(r.Context())
	booking, err := h.bookingService.GetBooking(r.Context(), claims.UserID, claims.Role, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *Handler) UpdateBookingDates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req updateDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	pickup, err := parseDate(req.PickupDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	ret, err := parseDate(req.ReturnDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	claims, _ := ClaimsFromContext(r.Context())
	booking, err := h.bookingService.UpdateBookingDates(r.Context(), claims.UserID, claims.Role, id, pickup, ret)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	claims, _ := ClaimsFromContext(r.Context())
	booking, err := h.bookingService.CancelBooking(r.Context(), claims.UserID, claims.Role, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *Handler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	booking, err := h.bookingService.CompleteBooking(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *Handler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")

	bookings, total, err := h.bookingService.ListUserBookings(r.Context(), claims.UserID, status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: bookings, Total: total, Page: page, PageSize: pageSize})
}

func (h *Handler) ListVehicleBookings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")

	bookings, total, err := h.bookingService.ListVehicleBookings(r.Context(), id, status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: bookings, Total: total, Page: page, PageSize: pageSize})
}
