package repository

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "smpid/internal/bookings/errors"
	"smpid/pkg/config"
	"smpid/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	LockCollectionName = "Date_locks"
)

// DateLockRepository provides operations for administrative date locks.
// The collection carries a unique index on date, so Create doubles as the
// guard against two admins locking the same day.
type DateLockRepository interface {
	Create(ctx context.Context, lock *model.DateLock) (*model.DateLock, error)
	FindByDate(ctx context.Context, date string) (*model.DateLock, error)
	FindByDateRange(ctx context.Context, startDate, endDate string) ([]*model.DateLock, error)
	DeleteByDate(ctx context.Context, date string) error
}

type mongoDateLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDateLockRepository(cfg *config.Config) DateLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDateLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoDateLockRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Create returns a duplicate key error if the date is already locked.
func (r *mongoDateLockRepository) Create(ctx context.Context, lock *model.DateLock) (*model.DateLock, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lock.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		lock.ID = oid.Hex()
	}
	return lock, nil
}

func (r *mongoDateLockRepository) FindByDate(ctx context.Context, date string) (*model.DateLock, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var lock model.DateLock
	err := r.collection.FindOne(ctx, bson.M{"date": date}).Decode(&lock)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrLockNotFound
		}
		return nil, fmt.Errorf("failed to find date lock: %w", err)
	}

	return &lock, nil
}

func (r *mongoDateLockRepository) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*model.DateLock, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": startDate, "$lte": endDate}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find date locks: %w", err)
	}
	defer cursor.Close(ctx)

	var locks []*model.DateLock
	if err = cursor.All(ctx, &locks); err != nil {
		return nil, fmt.Errorf("failed to decode date locks: %w", err)
	}

	return locks, nil
}

func (r *mongoDateLockRepository) DeleteByDate(ctx context.Context, date string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"date": date})
	if err != nil {
		return fmt.Errorf("failed to delete date lock: %w", err)
	}

	if result.DeletedCount == 0 {
		return bookingserrors.ErrLockNotFound
	}

	return nil
}
