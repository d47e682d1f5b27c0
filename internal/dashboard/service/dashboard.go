package service

import (
	"context"
	"smpid/pkg/client"
	"smpid/pkg/config"
	"smpid/pkg/dates"
	apperrors "smpid/pkg/errors"
	"smpid/pkg/model"
	"sync"
)

// Thin views over the peer-service clients so tests can stand in fakes.

type bookingsAPI interface {
	CountActive(ctx context.Context) (int64, error)
	CountUpcoming(ctx context.Context) (int64, error)
	ByDate(ctx context.Context, date string) ([]*model.Booking, error)
	Availability(ctx context.Context, year, month int) (*model.MonthAvailability, error)
}

type schoolsAPI interface {
	List(ctx context.Context, limit int, offset int64) ([]*model.SchoolProfile, int64, error)
	ByCode(ctx context.Context, code string) (*model.School, error)
}

type supportAPI interface {
	List(ctx context.Context, status string) ([]*model.Ticket, error)
}

type DashboardService interface {
	Summary(ctx context.Context) (*model.DashboardSummary, error)
	TodayBookings(ctx context.Context) ([]*model.TodayBooking, error)
	Calendar(ctx context.Context, year, month int) (*model.MonthAvailability, error)
}

type dashboardService struct {
	bookings bookingsAPI
	schools  schoolsAPI
	support  supportAPI
	cfg      *config.Config
	clock    dates.Clock
}

func NewDashboardService(cfg *config.Config) DashboardService {
	return &dashboardService{
		bookings: client.NewBookingsClient(cfg.BookingsURL),
		schools:  client.NewSchoolsClient(cfg.SchoolsURL),
		support:  client.NewSupportClient(cfg.SupportURL),
		cfg:      cfg,
		clock:    dates.SystemClock(),
	}
}

// schoolsPageSize matches the server-side pagination cap, so the
// completeness scan walks the fewest pages possible.
const schoolsPageSize = config.DefaultPaginationLimit

// Summary fans out to the three services concurrently; one slow peer must
// not serialize the whole landing page.
func (s *dashboardService) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	var summary model.DashboardSummary
	var errActive, errUpcoming, errSchools, errSupport error
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		summary.ActiveBookings, errActive = s.bookings.CountActive(ctx)
		if errActive != nil {
			s.cfg.Log.Error("Failed to count bookings for dashboard", "error", errActive)
		}
	}()

	go func() {
		defer wg.Done()
		summary.UpcomingBookings, errUpcoming = s.bookings.CountUpcoming(ctx)
		if errUpcoming != nil {
			s.cfg.Log.Error("Failed to count upcoming bookings for dashboard", "error", errUpcoming)
		}
	}()

	go func() {
		defer wg.Done()
		var offset int64
		for {
			page, total, err := s.schools.List(ctx, schoolsPageSize, offset)
			if err != nil {
				errSchools = err
				s.cfg.Log.Error("Failed to list schools for dashboard", "offset", offset, "error", err)
				return
			}
			summary.Schools = int(total)
			for _, p := range page {
				if p.ProfileComplete {
					summary.CompleteProfiles++
				}
			}
			offset += int64(len(page))
			if len(page) == 0 || offset >= total {
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		var open []*model.Ticket
		open, errSupport = s.support.List(ctx, model.TicketStatusOpen)
		if errSupport != nil {
			s.cfg.Log.Error("Failed to list open tickets for dashboard", "error", errSupport)
			return
		}
		summary.OpenTickets = len(open)
	}()

	wg.Wait()
	for _, err := range []error{errActive, errUpcoming, errSchools, errSupport} {
		if err != nil {
			return nil, apperrors.Unavailable("portal services")
		}
	}

	return &summary, nil
}

// TodayBookings joins today's sessions with the school directory. A missing
// directory entry degrades to an undecorated row rather than failing the
// dashboard.
func (s *dashboardService) TodayBookings(ctx context.Context) ([]*model.TodayBooking, error) {
	today := s.clock.Today().ISO()

	bookings, err := s.bookings.ByDate(ctx, today)
	if err != nil {
		s.cfg.Log.Error("Failed to load today's bookings", "date", today, "error", err)
		return nil, apperrors.Unavailable("bookings service")
	}

	rows := make([]*model.TodayBooking, len(bookings))
	for i, b := range bookings {
		row := &model.TodayBooking{Booking: *b}
		school, lookupErr := s.schools.ByCode(ctx, b.SchoolCode)
		if lookupErr != nil {
			s.cfg.Log.Warn("School lookup failed for dashboard row", "school_code", b.SchoolCode, "error", lookupErr)
		} else {
			row.SchoolType = school.SchoolType
		}
		rows[i] = row
	}

	return rows, nil
}

func (s *dashboardService) Calendar(ctx context.Context, year, month int) (*model.MonthAvailability, error) {
	availability, err := s.bookings.Availability(ctx, year, month)
	if err != nil {
		s.cfg.Log.Error("Failed to load calendar", "year", year, "month", month, "error", err)
		return nil, apperrors.Unavailable("bookings service")
	}
	return availability, nil
}
