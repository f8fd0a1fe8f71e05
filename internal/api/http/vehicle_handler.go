package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"
)

type vehicleRequest struct {
	Make           string  `json:"make" validate:"required"`
	Model          string  `json:"model" validate:"required"`
	Year           int32   `json:"year" validate:"required,gte=1950,lte=2100"`
	OfferingType   string  `json:"offering_type" validate:"omitempty,oneof=SALE RENTAL BOTH"`
	DailyRateCents int32   `json:"daily_rate_cents" validate:"gte=0"`
	SalePriceCents int32   `json:"sale_price_cents" validate:"gte=0"`
	IsAvailable    *bool   `json:"is_available"`
}

type availabilityResponse struct {
	VehicleID int32            `json:"vehicle_id"`
	Start     string           `json:"start"`
	End       string           `json:"end"`
	Decision  service.Decision `json:"decision"`
	Available bool             `json:"available"`
}

type purchaseRequest struct {
	ResellerID *int32 `json:"reseller_id"`
	PriceCents int32  `json:"price_cents" validate:"gte=0"`
	BookingID  *int32 `json:"booking_id"`
}

func (h *Handler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	vehicle := &domain.Vehicle{
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		OfferingType:   domain.OfferingType(req.OfferingType),
		DailyRateCents: req.DailyRateCents,
		SalePriceCents: req.SalePriceCents,
		IsAvailable:    true,
	}
	if req.IsAvailable != nil {
		vehicle.IsAvailable = *req.IsAvailable
	}
	if err := h.vehicleService.AddVehicle(r.Context(), vehicle); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	vehicle, err := h.vehicleService.GetVehicle(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	vehicle := &domain.Vehicle{
		ID:             id,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		OfferingType:   domain.OfferingType(req.OfferingType),
		DailyRateCents: req.DailyRateCents,
		SalePriceCents: req.SalePriceCents,
		IsAvailable:    true,
	}
	if req.IsAvailable != nil {
		vehicle.IsAvailable = *req.IsAvailable
	}
	if err := h.vehicleService.UpdateVehicle(r.Context(), vehicle); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := h.vehicleService.DeleteVehicle(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	offeringType := r.URL.Query().Get("offering_type")

	vehicles, total, err := h.vehicleService.ListVehicles(r.Context(), offeringType, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: vehicles, Total: total, Page: page, PageSize: pageSize})
}

// CheckAvailability answers whether a vehicle can be booked for a date
// range, without mutating anything. The answer is advisory: the booking
// transaction re-validates under lock.
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	q := r.URL.Query()
	start, err := parseDate(q.Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	end, err := parseDate(q.Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var excludeBookingID int32
	if raw := q.Get("exclude_booking_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid exclude_booking_id"})
			return
		}
		excludeBookingID = int32(v)
	}

	period, err := domain.NewInterval(start, end)
	if err != nil {
		respondError(w, err)
		return
	}

	decision, err := h.availabilityService.CheckAvailability(r.Context(), id, period, excludeBookingID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{
		VehicleID: id,
		Start:     start.Format(domain.DateFormat),
		End:       end.Format(domain.DateFormat),
		Decision:  decision,
		Available: decision == service.DecisionAvailable,
	})
}

func (h *Handler) PurchaseVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	claims, _ := ClaimsFromContext(r.Context())
	sale, err := h.vehicleService.SellVehicle(r.Context(), id, claims.UserID, req.ResellerID, req.PriceCents, req.BookingID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}
