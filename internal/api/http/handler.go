package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/security"
	"drivehub-backend/internal/service"
)

// Handler holds the services backing the REST API.
type Handler struct {
	userService         service.UserService
	vehicleService      service.VehicleService
	bookingService      service.BookingService
	availabilityService service.AvailabilityService
	settingsService     service.SettingsService
	notificationService service.NotificationService
	adminService        service.AdminService

	tokenManager security.TokenManager
	cookieName   string
	cookieSecure bool
	validate     *validator.Validate
}

func NewHandler(
	userService service.UserService,
	vehicleService service.VehicleService,
	bookingService service.BookingService,
	availabilityService service.AvailabilityService,
	settingsService service.SettingsService,
	notificationService service.NotificationService,
	adminService service.AdminService,
	tokenManager security.TokenManager,
	cookieName string,
	cookieSecure bool,
) *Handler {
	return &Handler{
		userService:         userService,
		vehicleService:      vehicleService,
		bookingService:      bookingService,
		availabilityService: availabilityService,
		settingsService:     settingsService,
		notificationService: notificationService,
		adminService:        adminService,
		tokenManager:        tokenManager,
		cookieName:          cookieName,
		cookieSecure:        cookieSecure,
		validate:            validator.New(),
	}
}

// pathID extracts a numeric path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return int32(id), nil
}

// parseDate parses a calendar date in the wire format.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", value, domain.DateFormat)
	}
	return t, nil
}

// pagination reads page/page_size query parameters with sane defaults.
func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}

type listResponse struct {
	Items    any   `json:"items"`
	Total    int32 `json:"total"`
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}
