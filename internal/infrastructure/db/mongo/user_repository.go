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

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID                string      `bson:"_id"`
	Email             string      `bson:"email"`
	PasswordHash      string      `bson:"password_hash"`
	Name              string      `bson:"name"`
	Handle            string      `bson:"handle,omitempty"`
	Role              string      `bson:"role"`
	Public            bool        `bson:"public"`
	BannedFromPosting bool        `bson:"banned_from_posting"`
	Bio               string      `bson:"bio,omitempty"`
	Location          string      `bson:"location,omitempty"`
	Website           string      `bson:"website,omitempty"`
	Social            mongoSocial `bson:"social,omitempty"`
	CreatedAt         time.Time   `bson:"created_at"`
	UpdatedAt         time.Time   `bson:"updated_at"`
}

type mongoSocial struct {
	Twitter   string `bson:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty"`
	YouTube   string `bson:"youtube,omitempty"`
	TikTok    string `bson:"tiktok,omitempty"`
	GitHub    string `bson:"github,omitempty"`
	Discord   string `bson:"discord,omitempty"`
	Twitch    string `bson:"twitch,omitempty"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:                u.ID,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		Name:              u.Name,
		Handle:            u.Handle,
		Role:              string(u.Role),
		Public:            u.Public,
		BannedFromPosting: u.BannedFromPosting,
		Bio:               u.Bio,
		Location:          u.Location,
		Website:           u.Website,
		Social:            mongoSocial(u.Social),
		CreatedAt:         u.CreatedAt.UTC(),
		UpdatedAt:         u.UpdatedAt.UTC(),
	}
}

// toDomain maps a stored document back. An unrecognised stored role is kept
// verbatim; the policy treats it as having no permissions.
func (m mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                m.ID,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Name:              m.Name,
		Handle:            m.Handle,
		Role:              domain.Role(m.Role),
		Public:            m.Public,
		BannedFromPosting: m.BannedFromPosting,
		Bio:               m.Bio,
		Location:          m.Location,
		Website:           m.Website,
		Social:            domain.SocialLinks(m.Social),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByHandle(ctx context.Context, handle string) (*domain.User, error) {
	if handle == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"handle": handle})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, toMongoUser(user))
	if err != nil {
		if duplicateOn(err, "handle") {
			return domain.ErrHandleTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListDiscoverable(ctx context.Context, limit int) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"public": true, "handle": bson.M{"$exists": true, "$ne": ""}}
	opts := options.Find().SetSort(bson.D{{Key: "handle", Value: 1}}).SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, len(docs))
	for i, d := range docs {
		users[i] = d.toDomain()
	}
	return users, nil
}

// EnsureIndexes creates the unique email index and a unique handle index
// that ignores users without a handle.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "handle", Value: 1}},
			Options: options.Index().
				SetName("handle_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"handle": bson.M{"$exists": true}}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
