package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smpid/pkg/config"
	"smpid/pkg/dates"
	"smpid/pkg/logger"
	"smpid/pkg/model"
)

type fakeBookings struct {
	countFunc        func(ctx context.Context) (int64, error)
	upcomingFunc     func(ctx context.Context) (int64, error)
	byDateFunc       func(ctx context.Context, date string) ([]*model.Booking, error)
	availabilityFunc func(ctx context.Context, year, month int) (*model.MonthAvailability, error)
}

func (f *fakeBookings) CountActive(ctx context.Context) (int64, error) {
	if f.countFunc != nil {
		return f.countFunc(ctx)
	}
	return 0, nil
}

func (f *fakeBookings) CountUpcoming(ctx context.Context) (int64, error) {
	if f.upcomingFunc != nil {
		return f.upcomingFunc(ctx)
	}
	return 0, nil
}

func (f *fakeBookings) ByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	if f.byDateFunc != nil {
		return f.byDateFunc(ctx, date)
	}
	return nil, nil
}

func (f *fakeBookings) Availability(ctx context.Context, year, month int) (*model.MonthAvailability, error) {
	if f.availabilityFunc != nil {
		return f.availabilityFunc(ctx, year, month)
	}
	return &model.MonthAvailability{Year: year, Month: month}, nil
}

type fakeSchools struct {
	listFunc   func(ctx context.Context, limit int, offset int64) ([]*model.SchoolProfile, int64, error)
	byCodeFunc func(ctx context.Context, code string) (*model.School, error)
}

func (f *fakeSchools) List(ctx context.Context, limit int, offset int64) ([]*model.SchoolProfile, int64, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (f *fakeSchools) ByCode(ctx context.Context, code string) (*model.School, error) {
	if f.byCodeFunc != nil {
		return f.byCodeFunc(ctx, code)
	}
	return nil, errors.New("not found")
}

type fakeSupport struct {
	listFunc func(ctx context.Context, status string) ([]*model.Ticket, error)
}

func (f *fakeSupport) List(ctx context.Context, status string) ([]*model.Ticket, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, status)
	}
	return nil, nil
}

// pagedDirectory serves profiles the way the schools handler does: one page
// per call, bounded by the requested limit and offset, total alongside.
func pagedDirectory(profiles []*model.SchoolProfile) func(context.Context, int, int64) ([]*model.SchoolProfile, int64, error) {
	return func(_ context.Context, limit int, offset int64) ([]*model.SchoolProfile, int64, error) {
		total := int64(len(profiles))
		if offset >= total {
			return nil, total, nil
		}
		end := offset + int64(limit)
		if end > total {
			end = total
		}
		return profiles[offset:end], total, nil
	}
}

func newTestService(b *fakeBookings, sc *fakeSchools, su *fakeSupport) *dashboardService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &dashboardService{
		bookings: b,
		schools:  sc,
		support:  su,
		cfg:      &config.Config{Log: log},
		clock:    dates.FixedClock{Instant: time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)},
	}
}

func TestSummary(t *testing.T) {
	bookings := &fakeBookings{
		countFunc: func(context.Context) (int64, error) {
			time.Sleep(5 * time.Millisecond)
			return 12, nil
		},
		upcomingFunc: func(context.Context) (int64, error) {
			return 7, nil
		},
	}
	schools := &fakeSchools{
		listFunc: pagedDirectory([]*model.SchoolProfile{
			{ProfileComplete: true},
			{ProfileComplete: false},
			{ProfileComplete: true},
		}),
	}
	support := &fakeSupport{
		listFunc: func(_ context.Context, status string) ([]*model.Ticket, error) {
			if status != model.TicketStatusOpen {
				t.Errorf("expected open filter, got %q", status)
			}
			return []*model.Ticket{{}, {}}, nil
		},
	}
	svc := newTestService(bookings, schools, support)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.ActiveBookings != 12 {
		t.Errorf("ActiveBookings: got %d", summary.ActiveBookings)
	}
	if summary.UpcomingBookings != 7 {
		t.Errorf("UpcomingBookings: got %d", summary.UpcomingBookings)
	}
	if summary.Schools != 3 || summary.CompleteProfiles != 2 {
		t.Errorf("Schools: got %d/%d complete", summary.Schools, summary.CompleteProfiles)
	}
	if summary.OpenTickets != 2 {
		t.Errorf("OpenTickets: got %d", summary.OpenTickets)
	}
}

// A directory larger than one server page must still be counted in full.
func TestSummary_PaginatesSchoolDirectory(t *testing.T) {
	profiles := make([]*model.SchoolProfile, 250)
	for i := range profiles {
		profiles[i] = &model.SchoolProfile{ProfileComplete: i%5 == 0}
	}

	var calls int
	schools := &fakeSchools{
		listFunc: func(ctx context.Context, limit int, offset int64) ([]*model.SchoolProfile, int64, error) {
			calls++
			if limit != schoolsPageSize {
				t.Errorf("expected page size %d, got %d", schoolsPageSize, limit)
			}
			return pagedDirectory(profiles)(ctx, limit, offset)
		},
	}
	svc := newTestService(&fakeBookings{}, schools, &fakeSupport{})

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Schools != 250 {
		t.Errorf("Schools: got %d, want 250", summary.Schools)
	}
	if summary.CompleteProfiles != 50 {
		t.Errorf("CompleteProfiles: got %d, want 50", summary.CompleteProfiles)
	}
	if calls != 3 {
		t.Errorf("expected 3 directory pages, got %d calls", calls)
	}
}

func TestSummary_PeerFailure(t *testing.T) {
	bookings := &fakeBookings{
		countFunc: func(context.Context) (int64, error) {
			return 0, errors.New("connection refused")
		},
	}
	svc := newTestService(bookings, &fakeSchools{}, &fakeSupport{})

	if _, err := svc.Summary(context.Background()); err == nil {
		t.Fatal("expected an error when a peer is down")
	}
}

func TestTodayBookings_JoinsDirectory(t *testing.T) {
	bookings := &fakeBookings{
		byDateFunc: func(_ context.Context, date string) ([]*model.Booking, error) {
			if date != "2025-03-04" {
				t.Errorf("expected today's date, got %s", date)
			}
			return []*model.Booking{
				{Date: date, Session: model.SessionMorning, SchoolCode: "ABC1234"},
				{Date: date, Session: model.SessionAfternoon, SchoolCode: "XYZ9999"},
			}, nil
		},
	}
	schools := &fakeSchools{
		byCodeFunc: func(_ context.Context, code string) (*model.School, error) {
			if code == "ABC1234" {
				return &model.School{SchoolCode: code, SchoolType: "SK"}, nil
			}
			return nil, errors.New("not found")
		},
	}
	svc := newTestService(bookings, schools, &fakeSupport{})

	rows, err := svc.TodayBookings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].SchoolType != "SK" {
		t.Errorf("expected joined school type, got %q", rows[0].SchoolType)
	}
	// Directory miss degrades to an undecorated row.
	if rows[1].SchoolType != "" {
		t.Errorf("expected empty school type on lookup failure, got %q", rows[1].SchoolType)
	}
}
