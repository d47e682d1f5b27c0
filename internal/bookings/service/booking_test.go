package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	bookingserrors "smpid/internal/bookings/errors"
	"smpid/internal/bookings/validator"
	"smpid/pkg/config"
	"smpid/pkg/dates"
	mongotx "smpid/pkg/db/mongo"
	apperrors "smpid/pkg/errors"
	"smpid/pkg/logger"
	"smpid/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// Mock repositories for testing

type mockBookingRepository struct {
	createFunc            func(ctx context.Context, booking *model.Booking) error
	findByIDFunc          func(ctx context.Context, id string) (*model.Booking, error)
	findActiveByRangeFunc func(ctx context.Context, startDate, endDate string) ([]*model.Booking, error)
	findActiveByDateFunc  func(ctx context.Context, date string) ([]*model.Booking, error)
	findActiveBySlotFunc  func(ctx context.Context, date string, session model.Session) (*model.Booking, error)
	findActiveFunc        func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	countActiveFunc       func(ctx context.Context) (int64, error)
	countActiveFromFunc   func(ctx context.Context, fromDate string) (int64, error)
	findBySchoolFunc      func(ctx context.Context, schoolCode string, limit int, offset int64) ([]*model.Booking, error)
	countBySchoolFunc     func(ctx context.Context, schoolCode string) (int64, error)
	cancelFunc            func(ctx context.Context, id string, note string) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "mock-id"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindActiveByDateRange(ctx context.Context, startDate, endDate string) ([]*model.Booking, error) {
	if m.findActiveByRangeFunc != nil {
		return m.findActiveByRangeFunc(ctx, startDate, endDate)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindActiveByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	if m.findActiveByDateFunc != nil {
		return m.findActiveByDateFunc(ctx, date)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindActiveBySlot(ctx context.Context, date string, session model.Session) (*model.Booking, error) {
	if m.findActiveBySlotFunc != nil {
		return m.findActiveBySlotFunc(ctx, date, session)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindActive(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockBookingRepository) CountActive(ctx context.Context) (int64, error) {
	if m.countActiveFunc != nil {
		return m.countActiveFunc(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) CountActiveFrom(ctx context.Context, fromDate string) (int64, error) {
	if m.countActiveFromFunc != nil {
		return m.countActiveFromFunc(ctx, fromDate)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindBySchool(ctx context.Context, schoolCode string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findBySchoolFunc != nil {
		return m.findBySchoolFunc(ctx, schoolCode, limit, offset)
	}
	return nil, nil
}

func (m *mockBookingRepository) CountBySchool(ctx context.Context, schoolCode string) (int64, error) {
	if m.countBySchoolFunc != nil {
		return m.countBySchoolFunc(ctx, schoolCode)
	}
	return 0, nil
}

func (m *mockBookingRepository) Cancel(ctx context.Context, id string, note string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id, note)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	var sessCtx mongo.SessionContext
	return fn(sessCtx)
}

type mockDateLockRepository struct {
	createFunc          func(ctx context.Context, lock *model.DateLock) (*model.DateLock, error)
	findByDateFunc      func(ctx context.Context, date string) (*model.DateLock, error)
	findByDateRangeFunc func(ctx context.Context, startDate, endDate string) ([]*model.DateLock, error)
	deleteByDateFunc    func(ctx context.Context, date string) error
}

func (m *mockDateLockRepository) Create(ctx context.Context, lock *model.DateLock) (*model.DateLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	lock.ID = "mock-lock-id"
	return lock, nil
}

func (m *mockDateLockRepository) FindByDate(ctx context.Context, date string) (*model.DateLock, error) {
	if m.findByDateFunc != nil {
		return m.findByDateFunc(ctx, date)
	}
	return nil, bookingserrors.ErrLockNotFound
}

func (m *mockDateLockRepository) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*model.DateLock, error) {
	if m.findByDateRangeFunc != nil {
		return m.findByDateRangeFunc(ctx, startDate, endDate)
	}
	return nil, nil
}

func (m *mockDateLockRepository) DeleteByDate(ctx context.Context, date string) error {
	if m.deleteByDateFunc != nil {
		return m.deleteByDateFunc(ctx, date)
	}
	return nil
}

type capturedEvent struct {
	eventType string
	key       string
	payload   any
}

type mockPublisher struct {
	events []capturedEvent
}

func (m *mockPublisher) Publish(_ context.Context, eventType, key string, payload any) error {
	m.events = append(m.events, capturedEvent{eventType, key, payload})
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})

	return &config.Config{
		Log:              log,
		ReadTimeout:      5 * time.Second,
		WriteTimeout:     5 * time.Second,
		BookableWeekdays: []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Saturday},
		MinNoticeDays:    3,
		WorkshopTopics:   config.DefaultWorkshopTopics,
	}
}

func newTestService(repo *mockBookingRepository, lockRepo *mockDateLockRepository, pub *mockPublisher, today dates.Date) *bookingService {
	cfg := testConfig()
	return &bookingService{
		repo:       repo,
		lockRepo:   lockRepo,
		validator:  validator.NewBookingValidator(cfg, cfg.Log),
		cfg:        cfg,
		rules:      RulesFromConfig(cfg),
		clock:      dates.FixedClock{Instant: time.Date(today.Year, today.Month, today.Day, 9, 0, 0, 0, time.UTC)},
		publisher:  pub,
		codeSuffix: func(n int) string { return strings.Repeat("X", n) },
	}
}

func validBooking() *model.Booking {
	return &model.Booking{
		Date:         "2025-03-11", // Tuesday
		Session:      model.SessionMorning,
		SchoolCode:   "ABC1234",
		SchoolName:   "SK Taman Melati",
		Topic:        "DELIMa Onboarding",
		ContactName:  "Cikgu Aminah",
		ContactPhone: "+60123456789",
	}
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	appErr := apperrors.AsAppError(err)
	return appErr.Code
}

func TestCreate_Success(t *testing.T) {
	repo := &mockBookingRepository{}
	pub := &mockPublisher{}
	svc := newTestService(repo, &mockDateLockRepository{}, pub, dates.New(2025, time.March, 1))

	booking := validBooking()
	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != model.BookingStatusActive {
		t.Errorf("expected status active, got %s", booking.Status)
	}
	if booking.BookingCode != "250311-234-XXXX" {
		t.Errorf("unexpected booking code: %s", booking.BookingCode)
	}
	if booking.ID == "" {
		t.Error("expected booking ID to be set")
	}

	if len(pub.events) != 1 || pub.events[0].eventType != "booking.created" {
		t.Fatalf("expected one booking.created event, got %v", pub.events)
	}
	if pub.events[0].key != "2025-03-11" {
		t.Errorf("expected event keyed by date, got %s", pub.events[0].key)
	}
}

func TestCreate_NormalizesInput(t *testing.T) {
	var stored *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(_ context.Context, b *model.Booking) error {
			stored = b
			b.ID = "mock-id"
			return nil
		},
	}
	svc := newTestService(repo, &mockDateLockRepository{}, &mockPublisher{}, dates.New(2025, time.March, 1))

	booking := validBooking()
	booking.SchoolCode = " abc 1234 "
	booking.ContactPhone = "012-345 6789"
	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.SchoolCode != "ABC1234" {
		t.Errorf("expected school code normalized to ABC1234, got %q", stored.SchoolCode)
	}
	if stored.ContactPhone != "+60123456789" {
		t.Errorf("expected phone in E.164, got %q", stored.ContactPhone)
	}
}

func TestCreate_DisallowedWeekday(t *testing.T) {
	mutated := false
	repo := &mockBookingRepository{
		createFunc: func(context.Context, *model.Booking) error {
			mutated = true
			return nil
		},
	}
	svc := newTestService(repo, &mockDateLockRepository{}, &mockPublisher{}, dates.New(2025, time.March, 1))

	booking := validBooking()
	booking.Date = "2025-03-10" // Monday

	err := svc.Create(context.Background(), booking)
	if code := appCode(t, err); code != apperrors.CodeInvalidDay {
		t.Fatalf("expected %s, got %s", apperrors.CodeInvalidDay, code)
	}
	if mutated {
		t.Error("store must not be mutated on a weekday rejection")
	}
}

func TestCreate_InsideNoticeWindow(t *testing.T) {
	mutated := false
	repo := &mockBookingRepository{
		createFunc: func(context.Context, *model.Booking) error {
			mutated = true
			return nil
		},
	}
	// Tuesday March 4, two days after "today".
	svc := newTestService(repo, &mockDateLockRepository{}, &mockPublisher{}, dates.New(2025, time.March, 2))

	booking := validBooking()
	booking.Date = "2025-03-04"

	err := svc.Create(context.Background(), booking)
	if code := appCode(t, err); code != apperrors.CodeInvalidDay {
		t.Fatalf("expected %s, got %s", apperrors.CodeInvalidDay, code)
	}
	if mutated {
		t.Error("store must not be mutated on a notice-window rejection")
	}
}

func TestCreate_DateLocked(t *testing.T) {
	mutated := false
	repo := &mockBookingRepository{
		createFunc: func(context.Context, *model.Booking) error {
			mutated = true
			return nil
		},
	}
	lockRepo := &mockDateLockRepository{
		findByDateFunc: func(_ context.Context, date string) (*model.DateLock, error) {
			return &model.DateLock{Date: date, Note: "PUBLIC HOLIDAY"}, nil
		},
	}
	svc := newTestService(repo, lockRepo, &mockPublisher{}, dates.New(2025, time.March, 1))

	err := svc.Create(context.Background(), validBooking())
	if code := appCode(t, err); code != apperrors.CodeDateLocked {
		t.Fatalf("expected %s, got %s", apperrors.CodeDateLocked, code)
	}
	if mutated {
		t.Error("store must not be mutated on a locked date")
	}
}

func TestCreate_SlotTaken(t *testing.T) {
	repo := &mockBookingRepository{
		findActiveBySlotFunc: func(_ context.Context, date string, session model.Session) (*model.Booking, error) {
			return &model.Booking{Date: date, Session: session}, nil
		},
	}
	svc := newTestService(repo, &mockDateLockRepository{}, &mockPublisher{}, dates.New(2025, time.March, 1))

	err := svc.Create(context.Background(), validBooking())
	if code := appCode(t, err); code != apperrors.CodeSlotTaken {
		t.Fatalf("expected %s, got %s", apperrors.CodeSlotTaken, code)
	}
}

func TestCreate_SlotRaceMapsToSlotTaken(t *testing.T) {
	// The availability check passes but the unique index rejects the
	// insert: two requests raced for the same slot.
	repo := &mockBookingRepository{
		createFunc: func(context.Context, *model.Booking) error {
			return bookingserrors.ErrSlotOccupied
		},
	}
	svc := newTestService(repo, &mockDateLockRepository{}, &mockPublisher{}, dates.New(2025, time.March, 1))

	err := svc.Create(context.Background(), validBooking())
	if code := appCode(t, err); code != apperrors.CodeSlotTaken {
		t.Fatalf("expected %s, got %s", apperrors.CodeSlotTaken, code)
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockDateLockRepository{}, &mockPublisher{}, dates.New(2025, time.March, 1))

	cases := []struct {
		name   string
		mutate func(*model.Booking)
	}{
		{"bad date", func(b *model.Booking) { b.Date = "11/03/2025" }},
		{"bad session", func(b *model.Booking) { b.Session = "evening" }},
		{"bad school code", func(b *model.Booking) { b.SchoolCode = "1234ABC" }},
		{"unknown topic", func(b *model.Booking) { b.Topic = "Knitting" }},
		{"bad phone", func(b *model.Booking) { b.ContactPhone = "not-a-phone" }},
		{"missing contact", func(b *model.Booking) { b.ContactName = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			booking := validBooking()
			tc.mutate(booking)
			err := svc.Create(context.Background(), booking)
			if code := appCode(t, err); code != apperrors.CodeValidation {
				t.Errorf("expected %s, got %s", apperrors.CodeValidation, code)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	var cancelNote string
	repo := &mockBookingRepository{
		findByIDFunc: func(_ context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:          id,
				BookingCode: "250311-234-XXXX",
				Date:        "2025-03-11",
				Session:     model.SessionMorning,
				SchoolCode:  "ABC1234",
				Status:      model.BookingStatusActive,
			}, nil
		},
		cancelFunc: func(_ context.Context, _ string, note string) error {
			cancelNote = note
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, &mockDateLockRepository{}, pub, dates.New(2025, time.March, 1))

	err := svc.Cancel(context.Background(), "64f000000000000000000001", "School closed for floods", "Admin Zul")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(cancelNote, "Admin Zul") || !strings.Contains(cancelNote, "School closed for floods") {
		t.Errorf("cancellation note missing actor or reason: %q", cancelNote)
	}
	if len(pub.events) != 1 || pub.events[0].eventType != "booking.cancelled" {
		t.Fatalf("expected one booking.cancelled event, got %v", pub.events)
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(_ context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.BookingStatusCancelled}, nil
		},
	}
	svc := newTestService(repo, &mockDateLockRepository{}, &mockPublisher{}, dates.New(2025, time.March, 1))

	err := svc.Cancel(context.Background(), "64f000000000000000000001", "reason enough", "Admin Zul")
	if code := appCode(t, err); code != apperrors.CodeConflict {
		t.Fatalf("expected %s, got %s", apperrors.CodeConflict, code)
	}
}

func TestToggleDateLock_Roundtrip(t *testing.T) {
	// In-memory lock state: toggling twice returns the date to its
	// original state.
	var state *model.DateLock
	lockRepo := &mockDateLockRepository{
		findByDateFunc: func(_ context.Context, date string) (*model.DateLock, error) {
			if state != nil && state.Date == date {
				return state, nil
			}
			return nil, bookingserrors.ErrLockNotFound
		},
		createFunc: func(_ context.Context, lock *model.DateLock) (*model.DateLock, error) {
			lock.ID = "lock-1"
			state = lock
			return lock, nil
		},
		deleteByDateFunc: func(_ context.Context, date string) error {
			state = nil
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(&mockBookingRepository{}, lockRepo, pub, dates.New(2025, time.March, 1))

	lock, locked, err := svc.ToggleDateLock(context.Background(), "2025-03-04", "PUBLIC HOLIDAY", "Admin Zul")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !locked || lock == nil || lock.Note != "PUBLIC HOLIDAY" {
		t.Fatalf("expected date to be locked with note, got locked=%v lock=%v", locked, lock)
	}
	if state == nil {
		t.Fatal("expected lock to be stored")
	}

	_, locked, err = svc.ToggleDateLock(context.Background(), "2025-03-04", "", "Admin Zul")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locked {
		t.Error("expected second toggle to unlock")
	}
	if state != nil {
		t.Error("expected lock to be removed")
	}

	if len(pub.events) != 2 || pub.events[0].eventType != "datelock.locked" || pub.events[1].eventType != "datelock.unlocked" {
		t.Fatalf("expected locked then unlocked events, got %v", pub.events)
	}
}

func TestToggleDateLock_InvalidDate(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockDateLockRepository{}, &mockPublisher{}, dates.New(2025, time.March, 1))

	_, _, err := svc.ToggleDateLock(context.Background(), "04-03-2025", "note", "Admin Zul")
	if code := appCode(t, err); code != apperrors.CodeInvalidInput {
		t.Fatalf("expected %s, got %s", apperrors.CodeInvalidInput, code)
	}
}

func TestMonthlyAvailability_MarchScenario(t *testing.T) {
	bookings := []*model.Booking{
		{Date: "2025-03-01", Session: model.SessionMorning, Status: model.BookingStatusActive},
		{Date: "2025-03-08", Session: model.SessionMorning, Status: model.BookingStatusActive},
		{Date: "2025-03-08", Session: model.SessionAfternoon, Status: model.BookingStatusActive},
	}
	locks := []*model.DateLock{
		{Date: "2025-03-04", Note: "PUBLIC HOLIDAY"},
	}

	repo := &mockBookingRepository{
		findActiveByRangeFunc: func(_ context.Context, start, end string) ([]*model.Booking, error) {
			if start != "2025-03-01" || end != "2025-03-31" {
				t.Errorf("unexpected range %s..%s", start, end)
			}
			return bookings, nil
		},
	}
	lockRepo := &mockDateLockRepository{
		findByDateRangeFunc: func(_ context.Context, start, end string) ([]*model.DateLock, error) {
			return locks, nil
		},
	}
	svc := newTestService(repo, lockRepo, &mockPublisher{}, dates.New(2025, time.February, 20))

	month, err := svc.MonthlyAvailability(context.Background(), 2025, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if month.Year != 2025 || month.Month != 3 {
		t.Fatalf("unexpected month coordinates: %d-%d", month.Year, month.Month)
	}
	if len(month.Days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(month.Days))
	}

	byDate := map[string]model.DayAvailability{}
	for _, d := range month.Days {
		byDate[d.Date] = d
	}

	// Saturday March 1: morning booked, afternoon free.
	if d := byDate["2025-03-01"]; d.Status != model.DayPartial ||
		len(d.FreeSessions) != 1 || d.FreeSessions[0] != model.SessionAfternoon {
		t.Errorf("expected 2025-03-01 partial with afternoon free, got %+v", d)
	}
	// Monday March 3: not a working day.
	if d := byDate["2025-03-03"]; d.Status != model.DayClosed {
		t.Errorf("expected 2025-03-03 closed, got %+v", d)
	}
	// Tuesday March 4: locked despite being an allowed weekday.
	if d := byDate["2025-03-04"]; d.Status != model.DayLocked || d.LockNote != "PUBLIC HOLIDAY" {
		t.Errorf("expected 2025-03-04 locked with note, got %+v", d)
	}
	// Saturday March 8: both sessions booked.
	if d := byDate["2025-03-08"]; d.Status != model.DayFull {
		t.Errorf("expected 2025-03-08 full, got %+v", d)
	}
	// Tuesday March 11: free working day.
	if d := byDate["2025-03-11"]; d.Status != model.DayOpen || len(d.FreeSessions) != 2 {
		t.Errorf("expected 2025-03-11 open, got %+v", d)
	}
}

func TestMonthlyAvailability_CancelledExcluded(t *testing.T) {
	// The repository query filters on active status; this test pins that
	// a re-query after a cancellation reports the freed session.
	bookings := []*model.Booking{
		{Date: "2025-03-01", Session: model.SessionAfternoon, Status: model.BookingStatusActive},
	}
	repo := &mockBookingRepository{
		findActiveByRangeFunc: func(context.Context, string, string) ([]*model.Booking, error) {
			return bookings, nil
		},
	}
	svc := newTestService(repo, &mockDateLockRepository{}, &mockPublisher{}, dates.New(2025, time.February, 20))

	month, err := svc.MonthlyAvailability(context.Background(), 2025, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := month.Days[0]; d.Status != model.DayPartial || d.FreeSessions[0] != model.SessionMorning {
		t.Errorf("expected 2025-03-01 partial with morning free, got %+v", d)
	}

	bookings = nil
	month, err = svc.MonthlyAvailability(context.Background(), 2025, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := month.Days[0]; d.Status != model.DayOpen {
		t.Errorf("expected 2025-03-01 open after cancellation, got %+v", d)
	}
}

func TestGetActive_ConcurrentReads(t *testing.T) {
	repo := &mockBookingRepository{
		countActiveFunc: func(context.Context) (int64, error) {
			time.Sleep(5 * time.Millisecond)
			return 7, nil
		},
		findActiveFunc: func(context.Context, int, int64) ([]*model.Booking, error) {
			time.Sleep(5 * time.Millisecond)
			return []*model.Booking{{ID: "1"}}, nil
		},
	}
	svc := newTestService(repo, &mockDateLockRepository{}, &mockPublisher{}, dates.New(2025, time.March, 1))

	// Run with -race to catch unsynchronized writes.
	for i := 0; i < 20; i++ {
		bookings, count, err := svc.GetActive(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 7 || len(bookings) != 1 {
			t.Fatalf("iteration %d: got count=%d len=%d", i, count, len(bookings))
		}
	}
}

func TestMonthlyAvailability_StoreTimeout(t *testing.T) {
	repo := &mockBookingRepository{
		findActiveByRangeFunc: func(context.Context, string, string) ([]*model.Booking, error) {
			return nil, fmt.Errorf("failed to find bookings by date range: %w", context.DeadlineExceeded)
		},
	}
	svc := newTestService(repo, &mockDateLockRepository{}, &mockPublisher{}, farToday())

	_, err := svc.MonthlyAvailability(context.Background(), 2025, time.March)
	if code := appCode(t, err); code != apperrors.CodeUnavailable {
		t.Fatalf("store timeout surfaced as %s, want %s", code, apperrors.CodeUnavailable)
	}
}

func TestCreate_StoreTimeoutOnLockCheck(t *testing.T) {
	lockRepo := &mockDateLockRepository{
		findByDateFunc: func(context.Context, string) (*model.DateLock, error) {
			return nil, fmt.Errorf("failed to find date lock: %w", context.DeadlineExceeded)
		},
	}
	svc := newTestService(&mockBookingRepository{}, lockRepo, &mockPublisher{}, farToday())

	err := svc.Create(context.Background(), validBooking())
	if code := appCode(t, err); code != apperrors.CodeUnavailable {
		t.Fatalf("store timeout surfaced as %s, want %s", code, apperrors.CodeUnavailable)
	}
}

func TestUpcomingCount(t *testing.T) {
	repo := &mockBookingRepository{
		countActiveFromFunc: func(_ context.Context, from string) (int64, error) {
			if from != farToday().ISO() {
				t.Errorf("expected count from today %s, got %s", farToday().ISO(), from)
			}
			return 7, nil
		},
	}
	svc := newTestService(repo, &mockDateLockRepository{}, &mockPublisher{}, farToday())

	count, err := svc.UpcomingCount(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 7 {
		t.Errorf("expected 7 upcoming bookings, got %d", count)
	}
}
