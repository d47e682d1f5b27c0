package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	bookingserrors "smpid/internal/bookings/errors"
	"smpid/internal/bookings/repository"
	"smpid/internal/bookings/validator"
	"smpid/pkg/config"
	"smpid/pkg/dates"
	apperrors "smpid/pkg/errors"
	"smpid/pkg/events"
	"smpid/pkg/model"
	"smpid/pkg/sanitizer"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetActive(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetBySchool(ctx context.Context, schoolCode string, limit int, offset int64) ([]*model.Booking, int64, error)
	ActiveOnDate(ctx context.Context, date string) ([]*model.Booking, error)
	UpcomingCount(ctx context.Context) (int64, error)
	Cancel(ctx context.Context, id string, reason string, cancelledBy string) error
	MonthlyAvailability(ctx context.Context, year int, month time.Month) (*model.MonthAvailability, error)
	ToggleDateLock(ctx context.Context, date, note, requestedBy string) (*model.DateLock, bool, error)
	Locks(ctx context.Context, year int, month time.Month) ([]*model.DateLock, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.DateLockRepository
	validator *validator.BookingValidator
	cfg       *config.Config
	rules     Rules
	clock     dates.Clock
	publisher events.Publisher

	// codeSuffix produces the random tail of a booking code. Swapped out
	// in tests for a deterministic source.
	codeSuffix func(n int) string
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.DateLockRepository,
	validator *validator.BookingValidator,
	cfg *config.Config,
	publisher events.Publisher,
) BookingService {
	return &bookingService{
		repo:       repo,
		lockRepo:   lockRepo,
		validator:  validator,
		cfg:        cfg,
		rules:      RulesFromConfig(cfg),
		clock:      dates.SystemClock(),
		publisher:  publisher,
		codeSuffix: randomSuffix,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	date, err := dates.Parse(booking.Date)
	if err != nil {
		return apperrors.InvalidInput("Date must be a calendar date in YYYY-MM-DD format")
	}

	if !s.rules.BookableWeekday(date.Weekday()) {
		s.cfg.Log.Warn("Booking rejected: non-working day",
			"date", booking.Date,
			"weekday", date.Weekday().String(),
			"school_code", booking.SchoolCode,
		)
		return apperrors.InvalidDay(fmt.Sprintf(
			"Workshops do not run on %s. Working days are %s.",
			date.Weekday(), weekdayList(s.rules.Weekdays),
		))
	}

	today := s.clock.Today()
	if s.rules.WithinNotice(date, today) {
		s.cfg.Log.Warn("Booking rejected: inside notice window",
			"date", booking.Date,
			"school_code", booking.SchoolCode,
		)
		return apperrors.InvalidDay(fmt.Sprintf(
			"Bookings need at least %d days of notice. The earliest bookable date is %s.",
			s.rules.MinNoticeDays, s.rules.FirstBookable(today).ISO(),
		))
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		lock, lockErr := s.lockRepo.FindByDate(sessCtx, booking.Date)
		if lockErr == nil {
			return apperrors.DateLocked(booking.Date, lock.Note)
		}
		if !errors.Is(lockErr, bookingserrors.ErrLockNotFound) {
			return apperrors.Store("Failed to check date lock", lockErr)
		}

		_, slotErr := s.repo.FindActiveBySlot(sessCtx, booking.Date, booking.Session)
		if slotErr == nil {
			return apperrors.SlotTaken(booking.Date, string(booking.Session))
		}
		if !errors.Is(slotErr, bookingserrors.ErrNotFound) {
			return apperrors.Store("Failed to check slot occupancy", slotErr)
		}

		booking.BookingCode = s.bookingCode(date, booking.SchoolCode)
		if createErr := s.repo.Create(sessCtx, booking); createErr != nil {
			// The unique slot index backstops the check above when two
			// requests race past it.
			if errors.Is(createErr, bookingserrors.ErrSlotOccupied) {
				return apperrors.SlotTaken(booking.Date, string(booking.Session))
			}
			return apperrors.Store("Failed to create booking", createErr)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "date", booking.Date, "session", booking.Session, "error", err)
		if apperrors.IsAppError(err) {
			return err
		}
		// Session bootstrap failures never reach the closure above.
		return apperrors.Store("Failed to create booking", err)
	}

	s.publish(ctx, events.TypeBookingCreated, booking.Date, events.BookingEvent{
		BookingID:   booking.ID,
		BookingCode: booking.BookingCode,
		Date:        booking.Date,
		Session:     string(booking.Session),
		SchoolCode:  booking.SchoolCode,
		SchoolName:  booking.SchoolName,
		Topic:       booking.Topic,
	})

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"booking_code", booking.BookingCode,
		"date", booking.Date,
		"session", booking.Session,
		"school_code", booking.SchoolCode,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Store("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetActive(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountActive(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count active bookings", "error", errCount)
			errCount = apperrors.Store("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindActive(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list active bookings", "error", errFind)
			errFind = apperrors.Store("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) GetBySchool(ctx context.Context, schoolCode string, limit int, offset int64) ([]*model.Booking, int64, error) {
	schoolCode = sanitizer.NormalizeSchoolCode(schoolCode)
	if schoolCode == "" {
		return nil, 0, apperrors.InvalidInput("School code cannot be empty")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountBySchool(ctx, schoolCode)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings by school", "school_code", schoolCode, "error", errCount)
			errCount = apperrors.Store("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindBySchool(ctx, schoolCode, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings by school", "school_code", schoolCode, "error", errFind)
			errFind = apperrors.Store("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) ActiveOnDate(ctx context.Context, date string) ([]*model.Booking, error) {
	if _, err := dates.Parse(date); err != nil {
		return nil, apperrors.InvalidInput("Date must be a calendar date in YYYY-MM-DD format")
	}

	bookings, err := s.repo.FindActiveByDate(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by date", "date", date, "error", err)
		return nil, apperrors.Store("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

// UpcomingCount reports how many active bookings are scheduled from today
// onwards.
func (s *bookingService) UpcomingCount(ctx context.Context) (int64, error) {
	count, err := s.repo.CountActiveFrom(ctx, s.clock.Today().ISO())
	if err != nil {
		s.cfg.Log.Error("Failed to count upcoming bookings", "error", err)
		return 0, apperrors.Store("Failed to count upcoming bookings", err)
	}

	return count, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string, reason string, cancelledBy string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	reason = sanitizer.NormalizeNote(reason)
	cancelledBy = sanitizer.NormalizeName(cancelledBy)
	if reason == "" {
		return apperrors.InvalidInput("Cancellation reason cannot be empty")
	}
	if cancelledBy == "" {
		return apperrors.InvalidInput("Cancelled-by cannot be empty")
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status == model.BookingStatusCancelled {
		return apperrors.Conflict("Booking is already cancelled")
	}

	note := fmt.Sprintf("Cancelled by %s on %s. Reason: %s",
		cancelledBy, s.clock.Now().UTC().Format(time.RFC3339), reason)

	if err := s.repo.Cancel(ctx, id, note); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Store("Failed to cancel booking", err)
	}

	s.publish(ctx, events.TypeBookingCancelled, booking.Date, events.BookingEvent{
		BookingID:   booking.ID,
		BookingCode: booking.BookingCode,
		Date:        booking.Date,
		Session:     string(booking.Session),
		SchoolCode:  booking.SchoolCode,
		SchoolName:  booking.SchoolName,
		Topic:       booking.Topic,
		Reason:      reason,
	})

	s.cfg.Log.Info("Booking cancelled", "id", id, "booking_code", booking.BookingCode, "cancelled_by", cancelledBy)
	return nil
}

func (s *bookingService) MonthlyAvailability(ctx context.Context, year int, month time.Month) (*model.MonthAvailability, error) {
	start, end := dates.MonthRange(year, month)

	var bookings []*model.Booking
	var locks []*model.DateLock
	var errBookings, errLocks error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		bookings, errBookings = s.repo.FindActiveByDateRange(ctx, start.ISO(), end.ISO())
		if errBookings != nil {
			s.cfg.Log.Error("Failed to load bookings for calendar", "year", year, "month", int(month), "error", errBookings)
			errBookings = apperrors.Store("Failed to load bookings", errBookings)
		}
	}()

	go func() {
		defer wg.Done()
		locks, errLocks = s.lockRepo.FindByDateRange(ctx, start.ISO(), end.ISO())
		if errLocks != nil {
			s.cfg.Log.Error("Failed to load date locks for calendar", "year", year, "month", int(month), "error", errLocks)
			errLocks = apperrors.Store("Failed to load date locks", errLocks)
		}
	}()

	wg.Wait()
	if errBookings != nil {
		return nil, errBookings
	}
	if errLocks != nil {
		return nil, errLocks
	}

	bookedByDate := make(map[string][]model.Session, len(bookings))
	for _, b := range bookings {
		bookedByDate[b.Date] = append(bookedByDate[b.Date], b.Session)
	}
	lockByDate := make(map[string]*model.DateLock, len(locks))
	for _, l := range locks {
		lockByDate[l.Date] = l
	}

	today := s.clock.Today()
	days := make([]model.DayAvailability, 0, dates.DaysInMonth(year, month))
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, s.rules.DayStatus(d, today, lockByDate[d.ISO()], bookedByDate[d.ISO()]))
	}

	return &model.MonthAvailability{
		Year:  year,
		Month: int(month),
		Days:  days,
	}, nil
}

// ToggleDateLock flips the lock state of a date. It returns the lock and
// true when the call locked the date, the removed lock and false when it
// unlocked it.
func (s *bookingService) ToggleDateLock(ctx context.Context, date, note, requestedBy string) (*model.DateLock, bool, error) {
	date = strings.TrimSpace(date)
	if _, err := dates.Parse(date); err != nil {
		return nil, false, apperrors.InvalidInput("Date must be a calendar date in YYYY-MM-DD format")
	}

	existing, err := s.lockRepo.FindByDate(ctx, date)
	if err == nil {
		if delErr := s.lockRepo.DeleteByDate(ctx, date); delErr != nil {
			if errors.Is(delErr, bookingserrors.ErrLockNotFound) {
				// Unlocked concurrently; treat as done.
				return existing, false, nil
			}
			s.cfg.Log.Error("Failed to remove date lock", "date", date, "error", delErr)
			return nil, false, apperrors.Store("Failed to remove date lock", delErr)
		}

		s.publish(ctx, events.TypeDateUnlocked, date, events.DateLockEvent{
			Date:     date,
			LockedBy: sanitizer.NormalizeName(requestedBy),
		})
		s.cfg.Log.Info("Date unlocked", "date", date, "requested_by", requestedBy)
		return existing, false, nil
	}
	if !errors.Is(err, bookingserrors.ErrLockNotFound) {
		return nil, false, apperrors.Store("Failed to check date lock", err)
	}

	lock := &model.DateLock{
		Date:     date,
		Note:     sanitizer.NormalizeNote(note),
		LockedBy: sanitizer.NormalizeName(requestedBy),
	}
	if err := s.validator.ValidateLock(lock); err != nil {
		s.cfg.Log.Warn("Date lock validation failed", "date", date, "error", err)
		return nil, false, apperrors.Validation("Date lock validation failed", map[string]any{"error": err.Error()})
	}

	created, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, false, apperrors.Conflict("Date was locked by another request. Toggle again to unlock it.")
		}
		s.cfg.Log.Error("Failed to create date lock", "date", date, "error", err)
		return nil, false, apperrors.Store("Failed to create date lock", err)
	}

	s.publish(ctx, events.TypeDateLocked, date, events.DateLockEvent{
		Date:     created.Date,
		Note:     created.Note,
		LockedBy: created.LockedBy,
	})
	s.cfg.Log.Info("Date locked", "date", date, "locked_by", created.LockedBy)
	return created, true, nil
}

func (s *bookingService) Locks(ctx context.Context, year int, month time.Month) ([]*model.DateLock, error) {
	start, end := dates.MonthRange(year, month)
	locks, err := s.lockRepo.FindByDateRange(ctx, start.ISO(), end.ISO())
	if err != nil {
		s.cfg.Log.Error("Failed to list date locks", "year", year, "month", int(month), "error", err)
		return nil, apperrors.Store("Failed to retrieve date locks", err)
	}
	return locks, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.BookingStatusActive
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Date = strings.TrimSpace(b.Date)
	b.SchoolCode = sanitizer.NormalizeSchoolCode(b.SchoolCode)
	b.SchoolName = sanitizer.NormalizeName(b.SchoolName)
	b.Topic = sanitizer.TrimAndNormalize(b.Topic)
	b.ContactName = sanitizer.NormalizeName(b.ContactName)
	b.ContactPhone = sanitizer.SanitizePhone(b.ContactPhone)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// bookingCode builds the human-readable reference a school quotes when it
// calls the district office: YYMMDD, the tail of the school code, and a
// random suffix, e.g. 250311-234-K7QF.
func (s *bookingService) bookingCode(date dates.Date, schoolCode string) string {
	tail := schoolCode
	if len(tail) > 3 {
		tail = tail[len(tail)-3:]
	}
	return fmt.Sprintf("%s-%s-%s", date.Compact(), tail, s.codeSuffix(4))
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomSuffix(n int) string {
	buf := make([]byte, n)
	rand.Read(buf)
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf)
}

func (s *bookingService) publish(ctx context.Context, eventType, key string, payload any) {
	if err := s.publisher.Publish(ctx, eventType, key, payload); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "type", eventType, "key", key, "error", err)
	}
}

func weekdayList(days []time.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
