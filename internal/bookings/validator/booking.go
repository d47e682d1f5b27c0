package validator

import (
	"errors"
	"fmt"
	"regexp"
	"smpid/pkg/config"
	"smpid/pkg/dates"
	"smpid/pkg/logger"
	"smpid/pkg/model"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Malaysian school codes: three letters followed by four digits, e.g. ABC1234.
	schoolCodeRegex = regexp.MustCompile(`^[A-Z]{3}\d{4}$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	cfg      *config.Config
	logger   *logger.Logger
}

func NewBookingValidator(cfg *config.Config, log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("civildate", validateCivilDate); err != nil {
		log.Fatal("Failed to register 'civildate' validator",
			"error", err,
		)
	}

	if err := v.RegisterValidation("schoolcode", validateSchoolCode); err != nil {
		log.Fatal("Failed to register 'schoolcode' validator",
			"error", err,
		)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		cfg:      cfg,
		logger:   log,
	}
}

func validateCivilDate(fl validator.FieldLevel) bool {
	_, err := dates.Parse(fl.Field().String())
	return err == nil
}

func validateSchoolCode(fl validator.FieldLevel) bool {
	return schoolCodeRegex.MatchString(fl.Field().String())
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !v.cfg.KnownTopic(booking.Topic) {
		return ValidationErrors{
			ValidationError{
				Field:   "Topic",
				Message: fmt.Sprintf("topic must be one of: %s", strings.Join(v.cfg.WorkshopTopics, ", ")),
			},
		}
	}

	if booking.ContactPhone == "" {
		return ValidationErrors{
			ValidationError{
				Field:   "ContactPhone",
				Message: "contact_phone must be a valid Malaysian phone number",
			},
		}
	}

	return nil
}

func (v *BookingValidator) ValidateLock(lock *model.DateLock) error {
	if err := v.validate.Struct(lock); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "civildate":
			message = fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", err.Field())
		case "schoolcode":
			message = fmt.Sprintf("%s must be a school code like ABC1234", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
