package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/content-system/internal/core/domain"
)

const newsletterCollection = "newsletter_subscriptions"

// NewsletterRepository implements ports.NewsletterRepository using MongoDB.
type NewsletterRepository struct {
	coll *mongo.Collection
}

func NewNewsletterRepository(db *mongo.Database) *NewsletterRepository {
	return &NewsletterRepository{coll: db.Collection(newsletterCollection)}
}

func (r *NewsletterRepository) FindByEmail(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	if email == "" {
		return nil, domain.ErrSubscriptionNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var sub domain.NewsletterSubscription
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&sub); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return &sub, nil
}

// Save upserts on email. A rotated id replaces the stored document's _id,
// so the old document is removed in the same call.
func (r *NewsletterRepository) Save(ctx context.Context, sub *domain.NewsletterSubscription) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"email": sub.Email, "_id": bson.M{"$ne": sub.ID}}); err != nil {
		return fmt.Errorf("replace subscription: %w", err)
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": sub.ID}, sub, opts); err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}

func (r *NewsletterRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
	return err
}
