package validator

import (
	"smpid/pkg/config"
	"smpid/pkg/logger"
	"smpid/pkg/model"
	"testing"
	"time"
)

func testValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:              log,
		BookableWeekdays: []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Saturday},
		MinNoticeDays:    3,
		WorkshopTopics:   config.DefaultWorkshopTopics,
	}
	return NewBookingValidator(cfg, log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		Date:         "2025-03-11",
		Session:      model.SessionMorning,
		SchoolCode:   "ABC1234",
		SchoolName:   "SK Taman Melati",
		Topic:        "DELIMa Onboarding",
		ContactName:  "Cikgu Aminah",
		ContactPhone: "+60123456789",
		Status:       model.BookingStatusActive,
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	v := testValidator()
	if err := v.Validate(validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_TopicCaseInsensitive(t *testing.T) {
	v := testValidator()
	b := validBooking()
	b.Topic = "delima onboarding"
	if err := v.Validate(b); err != nil {
		t.Fatalf("expected topic match to ignore case, got: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	v := testValidator()

	cases := []struct {
		name   string
		mutate func(*model.Booking)
	}{
		{"empty date", func(b *model.Booking) { b.Date = "" }},
		{"slash date", func(b *model.Booking) { b.Date = "11/03/2025" }},
		{"impossible date", func(b *model.Booking) { b.Date = "2025-02-30" }},
		{"unpadded date", func(b *model.Booking) { b.Date = "2025-3-1" }},
		{"bad session", func(b *model.Booking) { b.Session = "evening" }},
		{"short school code", func(b *model.Booking) { b.SchoolCode = "AB123" }},
		{"lowercase school code", func(b *model.Booking) { b.SchoolCode = "abc1234" }},
		{"unknown topic", func(b *model.Booking) { b.Topic = "Knitting" }},
		{"empty contact name", func(b *model.Booking) { b.ContactName = "" }},
		{"empty phone", func(b *model.Booking) { b.ContactPhone = "" }},
		{"bad status", func(b *model.Booking) { b.Status = "pending" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(b)
			if err := v.Validate(b); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateLock(t *testing.T) {
	v := testValidator()

	lock := &model.DateLock{
		Date:     "2025-03-04",
		Note:     "PUBLIC HOLIDAY",
		LockedBy: "Admin Zul",
	}
	if err := v.ValidateLock(lock); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lock.Note = ""
	if err := v.ValidateLock(lock); err == nil {
		t.Error("expected an error for an empty note")
	}

	lock.Note = "ok note"
	lock.Date = "4 March 2025"
	if err := v.ValidateLock(lock); err == nil {
		t.Error("expected an error for a non-civil date")
	}
}
