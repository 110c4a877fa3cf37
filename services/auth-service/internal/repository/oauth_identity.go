package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/model"
)

// OAuthIdentityRepository defines the interface for identity-related database operations.
type OAuthIdentityRepository interface {
	FindOrCreateIdentity(ctx context.Context, provider string, uid string) (*model.OAuthIdentity, error)
	UpdateIdentity(ctx context.Context, id string, params UpdateIdentityParams) (*model.OAuthIdentity, error)
	LinkUser(ctx context.Context, id string, userID string) error
	GetIdentityByProvider(ctx context.Context, provider string, uid string) (*model.OAuthIdentity, error)
	GetIdentitiesByUserID(ctx context.Context, userID string) ([]model.OAuthIdentity, error)
}

// UpdateIdentityParams defines the optional parameters for updating an identity.
// Only the fields that are not nil will be updated.
type UpdateIdentityParams struct {
	AccessToken  *string
	RefreshToken *string
	Token        *string
	TokenSecret  *string
	Profile      bson.M
}

// ErrIdentityAlreadyLinked is returned by LinkUser when the identity was
// linked to a user by a concurrent login.
var ErrIdentityAlreadyLinked = errors.New("identity is already linked to a user")

const identityCollection = "oauth_identities"

type oauthIdentityMongoRepository struct {
	db *mongo.Database
}

// NewOAuthIdentityMongoRepository creates the identity repository and ensures
// the unique compound index on (provider, uid) that FindOrCreateIdentity
// relies on.
func NewOAuthIdentityMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) OAuthIdentityRepository {
	collection := db.Collection(identityCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "provider", Value: 1},
				{Key: "uid", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create oauth identity indexes")
	}

	return &oauthIdentityMongoRepository{db: db}
}

// FindOrCreateIdentity returns the identity matching (provider, uid), creating
// it first when absent. The upsert is a single atomic operation, so concurrent
// calls with the same key always observe one row.
func (r *oauthIdentityMongoRepository) FindOrCreateIdentity(
	ctx context.Context,
	provider string,
	uid string,
) (*model.OAuthIdentity, error) {
	now := time.Now()

	result := r.db.Collection(identityCollection).FindOneAndUpdate(
		ctx,
		bson.M{"provider": provider, "uid": uid},
		bson.M{"$setOnInsert": bson.M{
			"provider":   provider,
			"uid":        uid,
			"created_at": now,
			"updated_at": now,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var identity model.OAuthIdentity
	if err := result.Decode(&identity); err != nil {
		return nil, err
	}

	return &identity, nil
}

func (r *oauthIdentityMongoRepository) UpdateIdentity(
	ctx context.Context,
	id string,
	params UpdateIdentityParams,
) (*model.OAuthIdentity, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.AccessToken != nil {
		updateMap["access_token"] = *params.AccessToken
	}
	if params.RefreshToken != nil {
		updateMap["refresh_token"] = *params.RefreshToken
	}
	if params.Token != nil {
		updateMap["token"] = *params.Token
	}
	if params.TokenSecret != nil {
		updateMap["token_secret"] = *params.TokenSecret
	}
	if params.Profile != nil {
		updateMap["profile"] = params.Profile
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no identity fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(identityCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var identity model.OAuthIdentity
	if err := result.Decode(&identity); err != nil {
		return nil, err
	}

	return &identity, nil
}

// LinkUser associates the identity with a user. The update only matches an
// identity without a user link; a zero match means a concurrent login linked
// it first and ErrIdentityAlreadyLinked is returned.
func (r *oauthIdentityMongoRepository) LinkUser(ctx context.Context, id string, userID string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(identityCollection).UpdateOne(
		ctx,
		bson.M{
			"_id":     objectID,
			"user_id": bson.M{"$exists": false},
		},
		bson.M{"$set": bson.M{
			"user_id":    userID,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrIdentityAlreadyLinked
	}

	return nil
}

func (r *oauthIdentityMongoRepository) GetIdentityByProvider(
	ctx context.Context,
	provider string,
	uid string,
) (*model.OAuthIdentity, error) {
	result := r.db.Collection(identityCollection).FindOne(ctx, bson.M{
		"provider": provider,
		"uid":      uid,
	})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var identity model.OAuthIdentity
	if err := result.Decode(&identity); err != nil {
		return nil, err
	}

	return &identity, nil
}

func (r *oauthIdentityMongoRepository) GetIdentitiesByUserID(
	ctx context.Context,
	userID string,
) ([]model.OAuthIdentity, error) {
	cursor, err := r.db.Collection(identityCollection).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}

	var identities []model.OAuthIdentity
	if err := cursor.All(ctx, &identities); err != nil {
		return nil, err
	}

	return identities, nil
}
