package service

import (
	"context"
	"errors"
	supporterrors "smpid/internal/support/errors"
	"smpid/internal/support/repository"
	"smpid/internal/support/validator"
	"smpid/pkg/config"
	apperrors "smpid/pkg/errors"
	"smpid/pkg/events"
	"smpid/pkg/model"
	"smpid/pkg/sanitizer"
	"sync"
)

type TicketService interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	List(ctx context.Context, status string, limit int, offset int64) ([]*model.Ticket, int64, error)
	GetBySchool(ctx context.Context, schoolCode string, limit int, offset int64) ([]*model.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.Ticket, error)
}

type ticketService struct {
	repo      repository.TicketRepository
	validator *validator.TicketValidator
	cfg       *config.Config
	publisher events.Publisher
}

func NewTicketService(
	repo repository.TicketRepository,
	validator *validator.TicketValidator,
	cfg *config.Config,
	publisher events.Publisher,
) TicketService {
	return &ticketService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		publisher: publisher,
	}
}

func (s *ticketService) Create(ctx context.Context, ticket *model.Ticket) error {
	if ticket.Status == "" {
		ticket.Status = model.TicketStatusOpen
	}
	s.sanitize(ticket)

	if err := s.validator.Validate(ticket); err != nil {
		s.cfg.Log.Warn("Ticket validation failed", "error", err)
		return apperrors.Validation("Ticket validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		s.cfg.Log.Error("Failed to create ticket", "school_code", ticket.SchoolCode, "error", err)
		return apperrors.Store("Failed to create ticket", err)
	}

	if err := s.publisher.Publish(ctx, events.TypeTicketCreated, ticket.SchoolCode, events.TicketEvent{
		TicketID:   ticket.ID,
		SchoolCode: ticket.SchoolCode,
		SenderRole: ticket.SenderRole,
		Subject:    ticket.Subject,
	}); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "type", events.TypeTicketCreated, "error", err)
	}

	s.cfg.Log.Info("Ticket created", "id", ticket.ID, "school_code", ticket.SchoolCode, "sender_role", ticket.SenderRole)
	return nil
}

func (s *ticketService) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Ticket ID cannot be empty")
	}

	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, supporterrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Ticket", id)
		}
		if errors.Is(err, supporterrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid ticket ID format")
		}
		return nil, apperrors.Store("Failed to retrieve ticket", err)
	}

	return ticket, nil
}

func (s *ticketService) List(ctx context.Context, status string, limit int, offset int64) ([]*model.Ticket, int64, error) {
	if status != "" && !validStatus(status) {
		return nil, 0, apperrors.InvalidInput("Unknown ticket status: " + status)
	}

	var count int64
	var tickets []*model.Ticket
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, status)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count tickets", "status", status, "error", errCount)
			errCount = apperrors.Store("Failed to count tickets", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		tickets, errFind = s.repo.FindAll(ctx, status, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list tickets", "status", status, "error", errFind)
			errFind = apperrors.Store("Failed to retrieve tickets", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return tickets, count, nil
}

func (s *ticketService) GetBySchool(ctx context.Context, schoolCode string, limit int, offset int64) ([]*model.Ticket, error) {
	schoolCode = sanitizer.NormalizeSchoolCode(schoolCode)
	if schoolCode == "" {
		return nil, apperrors.InvalidInput("School code cannot be empty")
	}

	tickets, err := s.repo.FindBySchool(ctx, schoolCode, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list tickets by school", "school_code", schoolCode, "error", err)
		return nil, apperrors.Store("Failed to retrieve tickets", err)
	}

	return tickets, nil
}

func (s *ticketService) UpdateStatus(ctx context.Context, id string, status string) (*model.Ticket, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Ticket ID cannot be empty")
	}
	if !validStatus(status) {
		return nil, apperrors.InvalidInput("Unknown ticket status: " + status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, supporterrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Ticket", id)
		}
		if errors.Is(err, supporterrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid ticket ID format")
		}
		s.cfg.Log.Error("Failed to update ticket status", "id", id, "error", err)
		return nil, apperrors.Store("Failed to update ticket status", err)
	}

	s.cfg.Log.Info("Ticket status updated", "id", id, "status", status)
	return s.GetByID(ctx, id)
}

func (s *ticketService) sanitize(t *model.Ticket) {
	t.SchoolCode = sanitizer.NormalizeSchoolCode(t.SchoolCode)
	t.Subject = sanitizer.TrimAndNormalize(t.Subject)
	t.Detail = sanitizer.NormalizeNote(t.Detail)
}

func validStatus(status string) bool {
	switch status {
	case model.TicketStatusOpen, model.TicketStatusInProgress, model.TicketStatusResolved:
		return true
	}
	return false
}
