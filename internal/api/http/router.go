package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the REST surface. Public routes handle registration,
// login and vehicle browsing; everything else sits behind the auth
// middleware, with admin-only routes gated a second time by role.
func NewRouter(h *Handler, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", h.ListVehicles).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", h.GetVehicle).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}/availability", h.CheckAvailability).Methods(http.MethodGet)

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(auth.Authenticate)

	authed.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/users/me", h.GetProfile).Methods(http.MethodGet)

	authed.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings", h.ListMyBookings).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}", h.GetBooking).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}/dates", h.UpdateBookingDates).Methods(http.MethodPatch)
	authed.HandleFunc("/bookings/{id:[0-9]+}/cancel", h.CancelBooking).Methods(http.MethodPost)

	authed.HandleFunc("/vehicles/{id:[0-9]+}/purchase", h.PurchaseVehicle).Methods(http.MethodPost)

	authed.HandleFunc("/notifications", h.ListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", h.MarkNotificationRead).Methods(http.MethodPost)

	// Admin
	authed.HandleFunc("/vehicles", RequireAdmin(h.AddVehicle)).Methods(http.MethodPost)
	authed.HandleFunc("/vehicles/{id:[0-9]+}", RequireAdmin(h.UpdateVehicle)).Methods(http.MethodPut)
	authed.HandleFunc("/vehicles/{id:[0-9]+}", RequireAdmin(h.DeleteVehicle)).Methods(http.MethodDelete)
	authed.HandleFunc("/vehicles/{id:[0-9]+}/bookings", RequireAdmin(h.ListVehicleBookings)).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}/complete", RequireAdmin(h.CompleteBooking)).Methods(http.MethodPost)
	authed.HandleFunc("/resellers", RequireAdmin(h.ListResellers)).Methods(http.MethodGet)
	authed.HandleFunc("/settings", RequireAdmin(h.ListSettings)).Methods(http.MethodGet)
	authed.HandleFunc("/settings/{key}", RequireAdmin(h.GetSetting)).Methods(http.MethodGet)
	authed.HandleFunc("/settings/{key}", RequireAdmin(h.SetSetting)).Methods(http.MethodPut)
	authed.HandleFunc("/admin/stats", RequireAdmin(h.GetStats)).Methods(http.MethodGet)

	return r
}
