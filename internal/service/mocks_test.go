package service_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"drivehub-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) IncrementCommissions(ctx context.Context, userID int32, deltaCents int32) error {
	args := m.Called(ctx, userID, deltaCents)
	return args.Error(0)
}
func (m *MockUserRepo) ListResellers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context, offeringType string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, offeringType, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}
func (m *MockVehicleRepo) AppendReservation(ctx context.Context, vehicleID int32, res domain.Reservation) error {
	args := m.Called(ctx, vehicleID, res)
	return args.Error(0)
}
func (m *MockVehicleRepo) RemoveReservation(ctx context.Context, vehicleID, bookingID int32) error {
	args := m.Called(ctx, vehicleID, bookingID)
	return args.Error(0)
}
func (m *MockVehicleRepo) HasOverlap(ctx context.Context, vehicleID int32, period domain.Interval, excludeBookingID int32) (bool, error) {
	args := m.Called(ctx, vehicleID, period, excludeBookingID)
	return args.Bool(0), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateDates(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) Cancel(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByVehicle(ctx context.Context, vehicleID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, vehicleID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.BookingStatus]int32), args.Error(1)
}

// MockSaleRepo
type MockSaleRepo struct {
	mock.Mock
}

func (m *MockSaleRepo) Create(ctx context.Context, sale *domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}
func (m *MockSaleRepo) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Sale, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).([]domain.Sale), args.Error(1)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}
func (m *MockSettingsRepo) Set(ctx context.Context, setting *domain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}
func (m *MockSettingsRepo) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Setting), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, name, vehicleName, pickup, ret string, totalCents int32) error {
	args := m.Called(ctx, email, name, vehicleName, pickup, ret, totalCents)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingDatesChanged(ctx context.Context, email, name, vehicleName, pickup, ret string) error {
	args := m.Called(ctx, email, name, vehicleName, pickup, ret)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancellation(ctx context.Context, email, name, vehicleName string) error {
	args := m.Called(ctx, email, name, vehicleName)
	return args.Error(0)
}

// fakeVehicleStore is a stateful in-memory vehicle store sharing a ledger
// with fakeBookingStore, used to exercise concurrent booking attempts.
type fakeVehicleStore struct {
	mu      sync.Mutex
	vehicle domain.Vehicle
	nextID  int32
}

func newFakeVehicleStore(v domain.Vehicle) *fakeVehicleStore {
	return &fakeVehicleStore{vehicle: v, nextID: 1}
}

func (f *fakeVehicleStore) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.vehicle.ID {
		return nil, domain.ErrVehicleNotFound
	}
	v := f.vehicle
	v.Reservations = append([]domain.Reservation(nil), f.vehicle.Reservations...)
	return &v, nil
}

// commit appends a ledger entry after re-checking overlap, mimicking the
// row-locked transactional insert of the real store.
func (f *fakeVehicleStore) commit(b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.vehicle.HasConflict(b.Period(), 0) {
		return domain.ErrConflict
	}
	b.ID = f.nextID
	f.nextID++
	f.vehicle.Reservations = append(f.vehicle.Reservations, domain.Reservation{
		BookingID: b.ID,
		Period:    b.Period(),
	})
	return nil
}

func (f *fakeVehicleStore) Create(ctx context.Context, v *domain.Vehicle) error  { return nil }
func (f *fakeVehicleStore) Update(ctx context.Context, v *domain.Vehicle) error  { return nil }
func (f *fakeVehicleStore) Delete(ctx context.Context, id int32) error           { return nil }
func (f *fakeVehicleStore) List(ctx context.Context, offeringType string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return nil, 0, nil
}
func (f *fakeVehicleStore) AppendReservation(ctx context.Context, vehicleID int32, res domain.Reservation) error {
	return nil
}
func (f *fakeVehicleStore) RemoveReservation(ctx context.Context, vehicleID, bookingID int32) error {
	return nil
}
func (f *fakeVehicleStore) HasOverlap(ctx context.Context, vehicleID int32, period domain.Interval, excludeBookingID int32) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vehicle.HasConflict(period, excludeBookingID), nil
}

// fakeBookingStore delegates Create to the shared vehicle store's ledger.
type fakeBookingStore struct {
	vehicles *fakeVehicleStore
}

func (f *fakeBookingStore) Create(ctx context.Context, b *domain.Booking) error {
	return f.vehicles.commit(b)
}
func (f *fakeBookingStore) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	return nil, domain.ErrBookingNotFound
}
func (f *fakeBookingStore) UpdateDates(ctx context.Context, b *domain.Booking) error {
	return nil
}
func (f *fakeBookingStore) Cancel(ctx context.Context, b *domain.Booking) error { return nil }
func (f *fakeBookingStore) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	return nil
}
func (f *fakeBookingStore) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return nil, 0, nil
}
func (f *fakeBookingStore) ListByVehicle(ctx context.Context, vehicleID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return nil, 0, nil
}
func (f *fakeBookingStore) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int32, error) {
	return nil, nil
}

// fakeBookingLedger is a stateful single-booking store whose Cancel and
// UpdateDates mirror the real store's guarded, transactional statements:
// the status flip only applies to an active booking, and the commission
// delta is computed against the stored value, both under the store's own
// lock. commissions tracks the reseller accumulator.
type fakeBookingLedger struct {
	mu          sync.Mutex
	booking     domain.Booking
	commissions int32
	cancels     int
}

func (f *fakeBookingLedger) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.booking.ID {
		return nil, domain.ErrBookingNotFound
	}
	b := f.booking
	return &b, nil
}

func (f *fakeBookingLedger) Cancel(ctx context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.booking.Active() {
		// Guarded status flip matched no row.
		return nil
	}
	f.commissions -= f.booking.CommissionCents
	f.booking.Status = domain.BookingStatusCancelled
	f.cancels++
	b.Status = domain.BookingStatusCancelled
	return nil
}

func (f *fakeBookingLedger) UpdateDates(ctx context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commissions += b.CommissionCents - f.booking.CommissionCents
	f.booking = *b
	return nil
}

func (f *fakeBookingLedger) Create(ctx context.Context, b *domain.Booking) error { return nil }
func (f *fakeBookingLedger) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	return nil
}
func (f *fakeBookingLedger) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return nil, 0, nil
}
func (f *fakeBookingLedger) ListByVehicle(ctx context.Context, vehicleID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return nil, 0, nil
}
func (f *fakeBookingLedger) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int32, error) {
	return nil, nil
}
