package booking

import (
	"context"
	"testing"
	"time"

	"slotwise/models"
)

type fakeBookingRepo struct {
	bookings  map[string]*models.Booking
	customers map[string]*models.Customer

	updatedStatus models.BookingStatus
	updatedStart  time.Time
	updatedEnd    time.Time
}

func (r *fakeBookingRepo) Create(ctx context.Context, bk *models.Booking) error {
	r.bookings[bk.ID] = bk
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	bk, ok := r.bookings[id]
	if !ok {
		return nil, ErrSlotUnavailable
	}
	copied := *bk
	return &copied, nil
}

func (r *fakeBookingRepo) ListInWindow(ctx context.Context, providerID, serviceID string, from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, payMode models.PayMode) error {
	r.updatedStatus = status
	return nil
}

func (r *fakeBookingRepo) UpdateTimes(ctx context.Context, id string, startAt, endAt time.Time) error {
	r.updatedStart = startAt
	r.updatedEnd = endAt
	return nil
}

func (r *fakeBookingRepo) AppendNote(ctx context.Context, id, note string) error { return nil }

func (r *fakeBookingRepo) CountInWindow(ctx context.Context, providerID string, status models.BookingStatus, startFrom, startTo time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeBookingRepo) CountCreatedSince(ctx context.Context, providerID string, status models.BookingStatus, since time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeBookingRepo) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, ErrSlotUnavailable
	}
	return c, nil
}

func (r *fakeBookingRepo) UpsertCustomer(ctx context.Context, c *models.Customer) error { return nil }

type fakeWalletRepo struct {
	wallet  *models.Wallet
	applied []models.WalletLedgerEntry
}

func (r *fakeWalletRepo) GetByProvider(ctx context.Context, providerID string) (*models.Wallet, error) {
	return r.wallet, nil
}

func (r *fakeWalletRepo) Create(ctx context.Context, w *models.Wallet) error {
	r.wallet = w
	return nil
}

func (r *fakeWalletRepo) Apply(ctx context.Context, w models.Wallet, entry models.WalletLedgerEntry) error {
	r.wallet = &w
	r.applied = append(r.applied, entry)
	return nil
}

func (r *fakeWalletRepo) ListLedger(ctx context.Context, walletID string, limit int64) ([]models.WalletLedgerEntry, error) {
	return r.applied, nil
}

type fakeProviderRepo struct {
	provider models.Provider
	service  models.Service
}

func (r *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	p := r.provider
	return &p, nil
}

func (r *fakeProviderRepo) GetByHandle(ctx context.Context, handle string) (*models.Provider, error) {
	p := r.provider
	return &p, nil
}

func (r *fakeProviderRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	s := r.service
	return &s, nil
}

func (r *fakeProviderRepo) ListServicesByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	return []models.Service{r.service}, nil
}

type fakeAvailabilityRepo struct {
	rules []models.AvailabilityRule
}

func (r *fakeAvailabilityRepo) GetRulesByProvider(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	return r.rules, nil
}

func (r *fakeAvailabilityRepo) CreateRule(ctx context.Context, rule *models.AvailabilityRule) error {
	return nil
}

func (r *fakeAvailabilityRepo) DeleteRule(ctx context.Context, providerID, ruleID string) error {
	return nil
}

func (r *fakeAvailabilityRepo) GetBlackoutsInRange(ctx context.Context, providerID, fromDay, toDay string) ([]models.BlackoutDate, error) {
	return nil, nil
}

func (r *fakeAvailabilityRepo) CreateBlackout(ctx context.Context, b *models.BlackoutDate) error {
	return nil
}

func (r *fakeAvailabilityRepo) DeleteBlackout(ctx context.Context, providerID, blackoutID string) error {
	return nil
}

type recordingNotifier struct {
	confirmed        int
	lowCreditsCalls  []int
	rescheduledCalls int
	previousStartAt  time.Time
	newStartAt       time.Time
}

func (n *recordingNotifier) BookingCreated(ctx context.Context, bk models.Booking, c *models.Customer, p models.Provider, s models.Service) error {
	return nil
}

func (n *recordingNotifier) BookingConfirmed(ctx context.Context, bk models.Booking, c *models.Customer, s models.Service) error {
	n.confirmed++
	return nil
}

func (n *recordingNotifier) BookingCancelled(ctx context.Context, bk models.Booking, c *models.Customer, refunded bool) error {
	return nil
}

func (n *recordingNotifier) BookingRescheduled(ctx context.Context, bk models.Booking, c *models.Customer, p models.Provider, s models.Service, previousStartAt time.Time) error {
	n.rescheduledCalls++
	n.previousStartAt = previousStartAt
	n.newStartAt = bk.StartAt
	return nil
}

func (n *recordingNotifier) ProviderLowCredits(ctx context.Context, bookingID string, p models.Provider, creditsRemaining int) error {
	n.lowCreditsCalls = append(n.lowCreditsCalls, creditsRemaining)
	return nil
}

func (n *recordingNotifier) PaymentReceipt(ctx context.Context, bk models.Booking, c *models.Customer, pay models.PaymentRecord) error {
	return nil
}

func (n *recordingNotifier) BookingReminder(ctx context.Context, p models.ReminderPayload) error {
	return nil
}

func newServiceForTest(bkRepo *fakeBookingRepo, wRepo *fakeWalletRepo, pRepo *fakeProviderRepo, aRepo *fakeAvailabilityRepo, notifier *recordingNotifier) *DefaultBookingService {
	return &DefaultBookingService{
		AvailabilityRepo: aRepo,
		BookingRepo:      bkRepo,
		WalletRepo:       wRepo,
		ProviderRepo:     pRepo,
		Notifier:         notifier,
		Gateway:          &stubGateway{},
		GatewayName:      "mock",
		LookaheadDays:    14,
	}
}

func TestConfirmBookingWarnsProviderOnLowCredits(t *testing.T) {
	start := time.Now().UTC().Add(48 * time.Hour)
	bkRepo := &fakeBookingRepo{
		bookings: map[string]*models.Booking{
			"b1": {ID: "b1", ProviderID: "p1", ServiceID: "s1", StartAt: start, Status: models.BookingPending},
		},
		customers: map[string]*models.Customer{},
	}
	wRepo := &fakeWalletRepo{wallet: &models.Wallet{ID: "w1", ProviderID: "p1", BalanceCredits: 2}}
	pRepo := &fakeProviderRepo{
		provider: models.Provider{ID: "p1", DisplayName: "Anna", Email: "anna@example.com"},
		service:  models.Service{ID: "s1", ProviderID: "p1", DurationMin: 60, BasePriceCents: 5000, IsActive: true},
	}
	notifier := &recordingNotifier{}
	svc := newServiceForTest(bkRepo, wRepo, pRepo, &fakeAvailabilityRepo{}, notifier)

	outcome, err := svc.ConfirmBooking(context.Background(), "p1", "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Confirmed {
		t.Fatal("expected the booking to confirm on credit")
	}
	if len(notifier.lowCreditsCalls) != 1 {
		t.Fatalf("expected one low-credits warning, got %d", len(notifier.lowCreditsCalls))
	}
	if notifier.lowCreditsCalls[0] != 1 {
		t.Fatalf("warning should carry the post-consumption balance 1, got %d", notifier.lowCreditsCalls[0])
	}
}

func TestConfirmBookingSkipsWarningWithHealthyBalance(t *testing.T) {
	start := time.Now().UTC().Add(48 * time.Hour)
	bkRepo := &fakeBookingRepo{
		bookings: map[string]*models.Booking{
			"b1": {ID: "b1", ProviderID: "p1", ServiceID: "s1", StartAt: start, Status: models.BookingPending},
		},
		customers: map[string]*models.Customer{},
	}
	wRepo := &fakeWalletRepo{wallet: &models.Wallet{ID: "w1", ProviderID: "p1", BalanceCredits: 10}}
	pRepo := &fakeProviderRepo{
		provider: models.Provider{ID: "p1", DisplayName: "Anna", Email: "anna@example.com"},
		service:  models.Service{ID: "s1", ProviderID: "p1", DurationMin: 60, BasePriceCents: 5000, IsActive: true},
	}
	notifier := &recordingNotifier{}
	svc := newServiceForTest(bkRepo, wRepo, pRepo, &fakeAvailabilityRepo{}, notifier)

	if _, err := svc.ConfirmBooking(context.Background(), "p1", "b1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.lowCreditsCalls) != 0 {
		t.Fatalf("expected no low-credits warning at balance 9, got %d", len(notifier.lowCreditsCalls))
	}
}

func TestRescheduleBookingQueuesCustomerNotice(t *testing.T) {
	now := time.Now().UTC()
	oldStart := now.Add(24 * time.Hour)

	// Next slot boundary two days out at midnight, covered by all-week
	// rules so the generator offers it.
	day := now.AddDate(0, 0, 2)
	newStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var rules []models.AvailabilityRule
	for dow := 0; dow < 7; dow++ {
		rules = append(rules, models.AvailabilityRule{
			ID: "r", ProviderID: "p1", DayOfWeek: dow, StartTime: "00:00", EndTime: "23:00",
		})
	}

	bkRepo := &fakeBookingRepo{
		bookings: map[string]*models.Booking{
			"b1": {ID: "b1", ProviderID: "p1", ServiceID: "s1", CustomerID: "c1", StartAt: oldStart, EndAt: oldStart.Add(time.Hour), Status: models.BookingConfirmed},
		},
		customers: map[string]*models.Customer{
			"c1": {ID: "c1", Name: "Ben", Email: "ben@example.com"},
		},
	}
	pRepo := &fakeProviderRepo{
		provider: models.Provider{ID: "p1", DisplayName: "Anna"},
		service:  models.Service{ID: "s1", ProviderID: "p1", Name: "Cut", DurationMin: 60, IsActive: true},
	}
	notifier := &recordingNotifier{}
	svc := newServiceForTest(bkRepo, &fakeWalletRepo{}, pRepo, &fakeAvailabilityRepo{rules: rules}, notifier)

	moved, err := svc.RescheduleBooking(context.Background(), "p1", "b1", newStart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !moved.StartAt.Equal(newStart) {
		t.Fatalf("expected start %v, got %v", newStart, moved.StartAt)
	}
	if notifier.rescheduledCalls != 1 {
		t.Fatalf("expected one reschedule notice, got %d", notifier.rescheduledCalls)
	}
	if !notifier.previousStartAt.Equal(oldStart) {
		t.Fatalf("notice should carry previous start %v, got %v", oldStart, notifier.previousStartAt)
	}
	if !notifier.newStartAt.Equal(newStart) {
		t.Fatalf("notice should carry new start %v, got %v", newStart, notifier.newStartAt)
	}
}
