package service

import (
	"context"
	"errors"
	schoolserrors "smpid/internal/schools/errors"
	"smpid/internal/schools/repository"
	"smpid/internal/schools/validator"
	"smpid/pkg/config"
	apperrors "smpid/pkg/errors"
	"smpid/pkg/model"
	"smpid/pkg/sanitizer"
	"sync"
)

type SchoolService interface {
	Create(ctx context.Context, school *model.School) error
	GetByCode(ctx context.Context, schoolCode string) (*model.SchoolProfile, error)
	List(ctx context.Context, limit int, offset int64) ([]*model.SchoolProfile, int64, error)
	Update(ctx context.Context, schoolCode string, updates *model.SchoolUpdate) (*model.SchoolProfile, error)
	ResetContacts(ctx context.Context, schoolCode string) (*model.SchoolProfile, error)
	Delete(ctx context.Context, schoolCode string) error
}

type schoolService struct {
	repo      repository.SchoolRepository
	validator *validator.SchoolValidator
	cfg       *config.Config
}

func NewSchoolService(
	repo repository.SchoolRepository,
	validator *validator.SchoolValidator,
	cfg *config.Config,
) SchoolService {
	return &schoolService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *schoolService) Create(ctx context.Context, school *model.School) error {
	s.sanitize(school)
	if err := s.validate(school); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, school); err != nil {
		if errors.Is(err, schoolserrors.ErrDuplicateCode) {
			return apperrors.Conflict("School code is already registered: " + school.SchoolCode)
		}
		s.cfg.Log.Error("Failed to create school", "school_code", school.SchoolCode, "error", err)
		return apperrors.Store("Failed to create school", err)
	}

	s.cfg.Log.Info("School registered", "school_code", school.SchoolCode, "school_name", school.SchoolName)
	return nil
}

func (s *schoolService) GetByCode(ctx context.Context, schoolCode string) (*model.SchoolProfile, error) {
	schoolCode = sanitizer.NormalizeSchoolCode(schoolCode)
	if schoolCode == "" {
		return nil, apperrors.InvalidInput("School code cannot be empty")
	}

	school, err := s.repo.FindByCode(ctx, schoolCode)
	if err != nil {
		if errors.Is(err, schoolserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("School", schoolCode)
		}
		return nil, apperrors.Store("Failed to retrieve school", err)
	}

	return deriveProfile(school), nil
}

func (s *schoolService) List(ctx context.Context, limit int, offset int64) ([]*model.SchoolProfile, int64, error) {
	var count int64
	var schools []*model.School
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count schools", "error", errCount)
			errCount = apperrors.Store("Failed to count schools", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		schools, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list schools", "error", errFind)
			errFind = apperrors.Store("Failed to retrieve schools", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	profiles := make([]*model.SchoolProfile, len(schools))
	for i, school := range schools {
		profiles[i] = deriveProfile(school)
	}

	return profiles, count, nil
}

func (s *schoolService) Update(ctx context.Context, schoolCode string, updates *model.SchoolUpdate) (*model.SchoolProfile, error) {
	schoolCode = sanitizer.NormalizeSchoolCode(schoolCode)
	if schoolCode == "" {
		return nil, apperrors.InvalidInput("School code cannot be empty")
	}

	existing, err := s.repo.FindByCode(ctx, schoolCode)
	if err != nil {
		if errors.Is(err, schoolserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("School", schoolCode)
		}
		return nil, apperrors.Store("Failed to check school existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("School update validation failed", "school_code", schoolCode, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeSchoolUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, schoolCode, merged); err != nil {
		if errors.Is(err, schoolserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("School", schoolCode)
		}
		s.cfg.Log.Error("Failed to update school", "school_code", schoolCode, "error", err)
		return nil, apperrors.Store("Failed to update school", err)
	}

	s.cfg.Log.Info("School profile updated", "school_code", schoolCode)
	return deriveProfile(merged), nil
}

func (s *schoolService) ResetContacts(ctx context.Context, schoolCode string) (*model.SchoolProfile, error) {
	schoolCode = sanitizer.NormalizeSchoolCode(schoolCode)
	if schoolCode == "" {
		return nil, apperrors.InvalidInput("School code cannot be empty")
	}

	if err := s.repo.ResetContacts(ctx, schoolCode); err != nil {
		if errors.Is(err, schoolserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("School", schoolCode)
		}
		s.cfg.Log.Error("Failed to reset school contacts", "school_code", schoolCode, "error", err)
		return nil, apperrors.Store("Failed to reset school contacts", err)
	}

	s.cfg.Log.Info("School contacts reset", "school_code", schoolCode)
	return s.GetByCode(ctx, schoolCode)
}

func (s *schoolService) Delete(ctx context.Context, schoolCode string) error {
	schoolCode = sanitizer.NormalizeSchoolCode(schoolCode)
	if schoolCode == "" {
		return apperrors.InvalidInput("School code cannot be empty")
	}

	if err := s.repo.Delete(ctx, schoolCode); err != nil {
		if errors.Is(err, schoolserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("School", schoolCode)
		}
		s.cfg.Log.Error("Failed to delete school", "school_code", schoolCode, "error", err)
		return apperrors.Store("Failed to delete school", err)
	}

	s.cfg.Log.Info("School removed", "school_code", schoolCode)
	return nil
}

// --- Helpers ---

// deriveProfile computes the directory flags from the two officer blocks.
// A shared phone usually means one teacher holds both roles, which the
// district follows up on.
func deriveProfile(school *model.School) *model.SchoolProfile {
	profile := &model.SchoolProfile{School: *school}

	profile.ProfileComplete = school.ICTCoordinator.Filled() && school.DelimaAdmin.Filled()

	ictPhone := school.ICTCoordinator.Phone
	delimaPhone := school.DelimaAdmin.Phone
	if ictPhone != "" && delimaPhone != "" {
		profile.SharedPhone = ictPhone == delimaPhone
		profile.DistinctPhones = ictPhone != delimaPhone
	}

	return profile
}

func (s *schoolService) sanitize(school *model.School) {
	school.SchoolCode = sanitizer.NormalizeSchoolCode(school.SchoolCode)
	school.SchoolName = sanitizer.NormalizeName(school.SchoolName)
	school.SchoolType = sanitizer.TrimAndNormalize(school.SchoolType)
	sanitizeContact(&school.ICTCoordinator)
	sanitizeContact(&school.DelimaAdmin)
}

func sanitizeContact(c *model.SchoolContact) {
	c.Name = sanitizer.NormalizeName(c.Name)
	c.Phone = sanitizer.SanitizePhone(c.Phone)
	c.Email = sanitizer.TrimAndNormalize(c.Email)
	c.TelegramID = sanitizer.TrimAndNormalize(c.TelegramID)
}

func (s *schoolService) validate(school *model.School) error {
	if err := s.validator.Validate(school); err != nil {
		s.cfg.Log.Warn("School validation failed", "error", err)
		return apperrors.Validation("School validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *schoolService) mergeSchoolUpdates(existing *model.School, updates *model.SchoolUpdate) *model.School {
	merged := *existing

	if updates.SchoolName != nil {
		merged.SchoolName = *updates.SchoolName
	}
	if updates.SchoolType != nil {
		merged.SchoolType = *updates.SchoolType
	}
	if updates.ICTCoordinator != nil {
		merged.ICTCoordinator = *updates.ICTCoordinator
	}
	if updates.DelimaAdmin != nil {
		merged.DelimaAdmin = *updates.DelimaAdmin
	}

	return &merged
}
