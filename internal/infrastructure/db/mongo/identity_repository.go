package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appointly/identity-service/internal/core/domain"
)

const identityCollection = "identities"

// IdentityRepository implements ports.IdentityRepository on MongoDB.
// Username and email uniqueness is enforced by unique indexes (see
// EnsureIndexes); duplicate-key violations surface as ErrIdentityExists.
type IdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{coll: db.Collection(identityCollection)}
}

type mongoIdentity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	Roles        []string           `bson:"roles"`
	Status       string             `bson:"status"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	doc := mongoIdentity{
		Username:     identity.Username,
		Email:        identity.Email,
		PasswordHash: identity.PasswordHash,
		Roles:        rolesToStrings(identity.Roles),
		Status:       string(identity.Status),
		CreatedAt:    identity.CreatedAt.Unix(),
		UpdatedAt:    identity.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrIdentityExists
		}
		return nil, storageErr("insert identity", err)
	}

	created := *identity
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *IdentityRepository) FindByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	var doc mongoIdentity
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, storageErr("find identity by username", err)
	}
	return doc.toDomain(), nil
}

func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIdentityNotFound
	}

	var doc mongoIdentity
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, storageErr("find identity by id", err)
	}
	return doc.toDomain(), nil
}

func (r *IdentityRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrIdentityNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC().Unix(),
	}})
	if err != nil {
		return storageErr("update password hash", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *IdentityRepository) List(ctx context.Context) ([]domain.Identity, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, storageErr("list identities", err)
	}
	defer cursor.Close(ctx)

	var identities []domain.Identity
	for cursor.Next(ctx) {
		var doc mongoIdentity
		if err := cursor.Decode(&doc); err != nil {
			return nil, storageErr("decode identity", err)
		}
		identities = append(identities, *doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, storageErr("iterate identities", err)
	}
	return identities, nil
}

func (r *IdentityRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrIdentityNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storageErr("delete identity", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (d *mongoIdentity) toDomain() *domain.Identity {
	roles := make([]domain.Role, len(d.Roles))
	for i, r := range d.Roles {
		roles[i] = domain.Role(r)
	}
	return &domain.Identity{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Roles:        roles,
		Status:       domain.Status(d.Status),
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

// storageErr tags infrastructure failures so the error handler can map them
// to a 503 while keeping the driver error in the chain for logs.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}
