package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	schoolserrors "smpid/internal/schools/errors"
	"smpid/internal/schools/validator"
	"smpid/pkg/config"
	apperrors "smpid/pkg/errors"
	"smpid/pkg/logger"
	"smpid/pkg/model"
)

type mockSchoolRepository struct {
	createFunc     func(ctx context.Context, school *model.School) error
	findByCodeFunc func(ctx context.Context, schoolCode string) (*model.School, error)
	findAllFunc    func(ctx context.Context, limit int, offset int64) ([]*model.School, error)
	countFunc      func(ctx context.Context) (int64, error)
	updateFunc     func(ctx context.Context, schoolCode string, school *model.School) error
	resetFunc      func(ctx context.Context, schoolCode string) error
	deleteFunc     func(ctx context.Context, schoolCode string) error
}

func (m *mockSchoolRepository) Create(ctx context.Context, school *model.School) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, school)
	}
	school.ID = "mock-id"
	return nil
}

func (m *mockSchoolRepository) FindByCode(ctx context.Context, schoolCode string) (*model.School, error) {
	if m.findByCodeFunc != nil {
		return m.findByCodeFunc(ctx, schoolCode)
	}
	return nil, schoolserrors.ErrNotFound
}

func (m *mockSchoolRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.School, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockSchoolRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockSchoolRepository) Update(ctx context.Context, schoolCode string, school *model.School) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, schoolCode, school)
	}
	return nil
}

func (m *mockSchoolRepository) ResetContacts(ctx context.Context, schoolCode string) error {
	if m.resetFunc != nil {
		return m.resetFunc(ctx, schoolCode)
	}
	return nil
}

func (m *mockSchoolRepository) Delete(ctx context.Context, schoolCode string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, schoolCode)
	}
	return nil
}

func newTestService(repo *mockSchoolRepository) SchoolService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return NewSchoolService(repo, validator.NewSchoolValidator(log), cfg)
}

func filledContact(phone string) model.SchoolContact {
	return model.SchoolContact{
		Name:  "Cikgu Aminah",
		Phone: phone,
		Email: "aminah@moe.edu.my",
	}
}

func TestDeriveProfile(t *testing.T) {
	cases := []struct {
		name     string
		school   model.School
		complete bool
		shared   bool
		distinct bool
	}{
		{
			name: "complete with distinct phones",
			school: model.School{
				ICTCoordinator: filledContact("+60123456789"),
				DelimaAdmin:    filledContact("+60129876543"),
			},
			complete: true,
			distinct: true,
		},
		{
			name: "one teacher holds both roles",
			school: model.School{
				ICTCoordinator: filledContact("+60123456789"),
				DelimaAdmin:    filledContact("+60123456789"),
			},
			complete: true,
			shared:   true,
		},
		{
			name: "missing delima admin",
			school: model.School{
				ICTCoordinator: filledContact("+60123456789"),
			},
		},
		{
			name:   "empty profile",
			school: model.School{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := deriveProfile(&tc.school)
			if p.ProfileComplete != tc.complete {
				t.Errorf("ProfileComplete: expected %v, got %v", tc.complete, p.ProfileComplete)
			}
			if p.SharedPhone != tc.shared {
				t.Errorf("SharedPhone: expected %v, got %v", tc.shared, p.SharedPhone)
			}
			if p.DistinctPhones != tc.distinct {
				t.Errorf("DistinctPhones: expected %v, got %v", tc.distinct, p.DistinctPhones)
			}
		})
	}
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo := &mockSchoolRepository{
		createFunc: func(context.Context, *model.School) error {
			return schoolserrors.ErrDuplicateCode
		},
	}
	svc := newTestService(repo)

	school := &model.School{
		SchoolCode: "ABC1234",
		SchoolName: "SK Taman Melati",
	}
	err := svc.Create(context.Background(), school)
	if err == nil {
		t.Fatal("expected an error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
}

func TestCreate_NormalizesCode(t *testing.T) {
	var stored *model.School
	repo := &mockSchoolRepository{
		createFunc: func(_ context.Context, school *model.School) error {
			stored = school
			return nil
		},
	}
	svc := newTestService(repo)

	school := &model.School{
		SchoolCode: " abc1234 ",
		SchoolName: "SK Taman Melati",
	}
	if err := svc.Create(context.Background(), school); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.SchoolCode != "ABC1234" {
		t.Errorf("expected normalized code ABC1234, got %q", stored.SchoolCode)
	}
}

func TestUpdate_MergesPartialEdit(t *testing.T) {
	existing := &model.School{
		SchoolCode:     "ABC1234",
		SchoolName:     "SK Taman Melati",
		SchoolType:     "SK",
		ICTCoordinator: filledContact("+60123456789"),
	}
	var updated *model.School
	repo := &mockSchoolRepository{
		findByCodeFunc: func(context.Context, string) (*model.School, error) {
			clone := *existing
			return &clone, nil
		},
		updateFunc: func(_ context.Context, _ string, school *model.School) error {
			updated = school
			return nil
		},
	}
	svc := newTestService(repo)

	newName := "SK Taman Melati 2"
	profile, err := svc.Update(context.Background(), "ABC1234", &model.SchoolUpdate{
		SchoolName:  &newName,
		DelimaAdmin: &model.SchoolContact{Name: "Cikgu Farid", Phone: "+60129876543", Email: "farid@moe.edu.my"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.SchoolName != newName {
		t.Errorf("expected name updated, got %q", updated.SchoolName)
	}
	if updated.SchoolType != "SK" {
		t.Errorf("expected untouched type preserved, got %q", updated.SchoolType)
	}
	if updated.ICTCoordinator.Name == "" {
		t.Error("expected untouched coordinator preserved")
	}
	if !profile.ProfileComplete {
		t.Error("expected derived profile to be complete after the edit")
	}
	if !profile.DistinctPhones {
		t.Error("expected distinct phones flag")
	}
}

func TestGetByCode_NotFound(t *testing.T) {
	svc := newTestService(&mockSchoolRepository{})

	_, err := svc.GetByCode(context.Background(), "XYZ9999")
	if err == nil {
		t.Fatal("expected an error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestList_WrapsProfiles(t *testing.T) {
	repo := &mockSchoolRepository{
		findAllFunc: func(context.Context, int, int64) ([]*model.School, error) {
			return []*model.School{
				{SchoolCode: "ABC1234", ICTCoordinator: filledContact("+60123456789"), DelimaAdmin: filledContact("+60123456789")},
				{SchoolCode: "DEF5678"},
			}, nil
		},
		countFunc: func(context.Context) (int64, error) { return 2, nil },
	}
	svc := newTestService(repo)

	profiles, count, err := svc.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 || len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got count=%d len=%d", count, len(profiles))
	}
	if !profiles[0].ProfileComplete || !profiles[0].SharedPhone {
		t.Errorf("expected first profile complete with shared phone, got %+v", profiles[0])
	}
	if profiles[1].ProfileComplete {
		t.Errorf("expected second profile incomplete, got %+v", profiles[1])
	}
}

func TestResetContacts_ClearsBothBlocks(t *testing.T) {
	cleared := false
	repo := &mockSchoolRepository{
		resetFunc: func(_ context.Context, schoolCode string) error {
			if schoolCode != "ABC1234" {
				t.Errorf("expected normalized code ABC1234, got %s", schoolCode)
			}
			cleared = true
			return nil
		},
		findByCodeFunc: func(context.Context, string) (*model.School, error) {
			return &model.School{SchoolCode: "ABC1234", SchoolName: "SK Taman Melati"}, nil
		},
	}
	svc := newTestService(repo)

	profile, err := svc.ResetContacts(context.Background(), " abc 1234 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cleared {
		t.Fatal("expected the repository reset to run")
	}
	if profile.ProfileComplete || profile.SharedPhone || profile.DistinctPhones {
		t.Errorf("expected a blank profile after reset, got %+v", profile)
	}
}

func TestResetContacts_NotFound(t *testing.T) {
	repo := &mockSchoolRepository{
		resetFunc: func(context.Context, string) error {
			return schoolserrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	_, err := svc.ResetContacts(context.Background(), "XYZ9999")
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected %s, got %v", apperrors.CodeNotFound, err)
	}
}

func TestGetByCode_StoreTimeout(t *testing.T) {
	repo := &mockSchoolRepository{
		findByCodeFunc: func(context.Context, string) (*model.School, error) {
			return nil, fmt.Errorf("failed to find school: %w", context.DeadlineExceeded)
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetByCode(context.Background(), "ABC1234")
	if err == nil {
		t.Fatal("expected an error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeUnavailable {
		t.Fatalf("store timeout surfaced as %s, want %s", appErr.Code, apperrors.CodeUnavailable)
	}
}
