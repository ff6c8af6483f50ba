package reporting

import (
	"context"
	"math"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	providerRepo "slotwise/database/repository/provider"
	"slotwise/models"
)

// RecentConversionWindowDays is the trailing window the conversion rate
// is computed over.
const RecentConversionWindowDays = 30

const upcomingListLimit = 5

// RecentConversion reports how many recent bookings reached confirmed.
type RecentConversion struct {
	Confirmed   int64   `json:"confirmed"`
	Total       int64   `json:"total"`
	RatePercent float64 `json:"ratePercent"`
	WindowDays  int     `json:"windowDays"`
}

// DashboardSummary is the provider dashboard headline numbers.
type DashboardSummary struct {
	UpcomingConfirmed int64            `json:"upcomingConfirmed"`
	TodayConfirmed    int64            `json:"todayConfirmed"`
	WeekConfirmed     int64            `json:"weekConfirmed"`
	PendingCount      int64            `json:"pendingCount"`
	RecentConversion  RecentConversion `json:"recentConversion"`
}

// UpcomingBooking is one row of the dashboard's upcoming list.
type UpcomingBooking struct {
	ID                 string    `json:"id"`
	StartAt            time.Time `json:"startAt"`
	ServiceName        string    `json:"serviceName"`
	ServiceDurationMin int       `json:"serviceDurationMin,omitempty"`
	CustomerName       string    `json:"customerName"`
	CustomerPhone      string    `json:"customerPhone,omitempty"`
}

// CalculateConversionRate returns confirmed/total as a percentage
// rounded to one decimal place. Zero when either input is non-positive.
func CalculateConversionRate(confirmed, total int64) float64 {
	if confirmed <= 0 || total <= 0 {
		return 0
	}

	percent := float64(confirmed) / float64(total) * 100
	return math.Round(percent*10) / 10
}

// Service produces provider dashboard figures.
type Service interface {
	DashboardSummary(ctx context.Context, providerID string, now time.Time) (*DashboardSummary, error)
	UpcomingBookings(ctx context.Context, providerID string, now time.Time) ([]UpcomingBooking, error)
}

type DefaultReportingService struct {
	BookingRepo  bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
}

func NewReportingService(bookings bookingRepo.BookingRepository, providers providerRepo.ProviderRepository) Service {
	return &DefaultReportingService{BookingRepo: bookings, ProviderRepo: providers}
}

// DashboardSummary counts confirmed bookings upcoming / today / this
// week (Monday start) plus pending, and derives the conversion rate
// over the trailing window.
func (s *DefaultReportingService) DashboardSummary(ctx context.Context, providerID string, now time.Time) (*DashboardSummary, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrowStart := todayStart.AddDate(0, 0, 1)
	weekStart := todayStart.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	weekEnd := weekStart.AddDate(0, 0, 7)
	recentWindowStart := now.AddDate(0, 0, -RecentConversionWindowDays)

	upcoming, err := s.BookingRepo.CountInWindow(ctx, providerID, models.BookingConfirmed, now, time.Time{})
	if err != nil {
		return nil, err
	}
	today, err := s.BookingRepo.CountInWindow(ctx, providerID, models.BookingConfirmed, todayStart, tomorrowStart)
	if err != nil {
		return nil, err
	}
	week, err := s.BookingRepo.CountInWindow(ctx, providerID, models.BookingConfirmed, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	pending, err := s.BookingRepo.CountInWindow(ctx, providerID, models.BookingPending, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	recentConfirmed, err := s.BookingRepo.CountCreatedSince(ctx, providerID, models.BookingConfirmed, recentWindowStart)
	if err != nil {
		return nil, err
	}
	recentPending, err := s.BookingRepo.CountCreatedSince(ctx, providerID, models.BookingPending, recentWindowStart)
	if err != nil {
		return nil, err
	}

	recentTotal := recentConfirmed + recentPending
	return &DashboardSummary{
		UpcomingConfirmed: upcoming,
		TodayConfirmed:    today,
		WeekConfirmed:     week,
		PendingCount:      pending,
		RecentConversion: RecentConversion{
			Confirmed:   recentConfirmed,
			Total:       recentTotal,
			RatePercent: CalculateConversionRate(recentConfirmed, recentTotal),
			WindowDays:  RecentConversionWindowDays,
		},
	}, nil
}

// UpcomingBookings lists the next confirmed bookings from today's start,
// with service and customer details denormalized for display.
func (s *DefaultReportingService) UpcomingBookings(ctx context.Context, providerID string, now time.Time) ([]UpcomingBooking, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	horizon := todayStart.AddDate(0, 0, 90)

	bookings, err := s.BookingRepo.ListInWindow(ctx, providerID, "", todayStart, horizon,
		[]models.BookingStatus{models.BookingConfirmed})
	if err != nil {
		return nil, err
	}
	if len(bookings) > upcomingListLimit {
		bookings = bookings[:upcomingListLimit]
	}

	rows := make([]UpcomingBooking, 0, len(bookings))
	for _, bk := range bookings {
		row := UpcomingBooking{
			ID:           bk.ID,
			StartAt:      bk.StartAt,
			ServiceName:  "Service",
			CustomerName: "Client",
		}
		if svc, err := s.ProviderRepo.GetServiceByID(ctx, bk.ServiceID); err == nil {
			row.ServiceName = svc.Name
			row.ServiceDurationMin = svc.DurationMin
		}
		if bk.CustomerID != "" {
			if c, err := s.BookingRepo.GetCustomerByID(ctx, bk.CustomerID); err == nil {
				if c.Name != "" {
					row.CustomerName = c.Name
				}
				row.CustomerPhone = c.Phone
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
