package repository

import (
	"context"
	"errors"
	"fmt"
	schoolserrors "smpid/internal/schools/errors"
	"smpid/pkg/config"
	"smpid/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Schools"
)

type SchoolRepository interface {
	Create(ctx context.Context, school *model.School) error
	FindByCode(ctx context.Context, schoolCode string) (*model.School, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.School, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, schoolCode string, school *model.School) error
	ResetContacts(ctx context.Context, schoolCode string) error
	Delete(ctx context.Context, schoolCode string) error
}

type mongoSchoolRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSchoolRepository(cfg *config.Config) SchoolRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSchoolRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoSchoolRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoSchoolRepository) Create(ctx context.Context, school *model.School) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	school.CreatedAt = now
	school.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, school)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", schoolserrors.ErrDuplicateCode, school.SchoolCode)
		}
		return fmt.Errorf("failed to create school: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		school.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSchoolRepository) FindByCode(ctx context.Context, schoolCode string) (*model.School, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var school model.School
	err := r.collection.FindOne(ctx, bson.M{"school_code": schoolCode}).Decode(&school)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, schoolserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find school: %w", err)
	}

	return &school, nil
}

func (r *mongoSchoolRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.School, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "school_code", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find schools: %w", err)
	}
	defer cursor.Close(ctx)

	var schools []*model.School
	if err = cursor.All(ctx, &schools); err != nil {
		return nil, fmt.Errorf("failed to decode schools: %w", err)
	}

	return schools, nil
}

func (r *mongoSchoolRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count schools: %w", err)
	}

	return count, nil
}

func (r *mongoSchoolRepository) Update(ctx context.Context, schoolCode string, school *model.School) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"school_name":     school.SchoolName,
			"school_type":     school.SchoolType,
			"ict_coordinator": school.ICTCoordinator,
			"delima_admin":    school.DelimaAdmin,
			"updated_at":      time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"school_code": schoolCode}, update)
	if err != nil {
		return fmt.Errorf("failed to update school: %w", err)
	}

	if result.MatchedCount == 0 {
		return schoolserrors.ErrNotFound
	}

	return nil
}

func (r *mongoSchoolRepository) ResetContacts(ctx context.Context, schoolCode string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"ict_coordinator": model.SchoolContact{},
			"delima_admin":    model.SchoolContact{},
			"updated_at":      time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"school_code": schoolCode}, update)
	if err != nil {
		return fmt.Errorf("failed to reset school contacts: %w", err)
	}

	if result.MatchedCount == 0 {
		return schoolserrors.ErrNotFound
	}

	return nil
}

func (r *mongoSchoolRepository) Delete(ctx context.Context, schoolCode string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"school_code": schoolCode})
	if err != nil {
		return fmt.Errorf("failed to delete school: %w", err)
	}

	if result.DeletedCount == 0 {
		return schoolserrors.ErrNotFound
	}

	return nil
}
