package validator

import (
	"errors"
	"fmt"
	"regexp"
	"smpid/pkg/logger"
	"smpid/pkg/model"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
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

type TicketValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewTicketValidator(log *logger.Logger) *TicketValidator {
	v := validator.New()

	if err := v.RegisterValidation("schoolcode", func(fl validator.FieldLevel) bool {
		return schoolCodeRegex.MatchString(fl.Field().String())
	}); err != nil {
		log.Fatal("Failed to register 'schoolcode' validator",
			"error", err,
		)
	}

	return &TicketValidator{
		validate: v,
		logger:   log,
	}
}

func (v *TicketValidator) Validate(ticket *model.Ticket) error {
	if err := v.validate.Struct(ticket); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *TicketValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
