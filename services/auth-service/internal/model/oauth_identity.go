package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OAuthIdentity links an external identity-provider account to a local user.
// Exactly one record exists per (provider, uid) pair. AccessToken and
// RefreshToken hold OAuth2 credentials; Token and TokenSecret hold OAuth1
// credentials. Profile keeps the full payload returned by the provider and is
// refreshed on every login.
type OAuthIdentity struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	UserID       string        `bson:"user_id,omitempty"`
	Provider     string        `bson:"provider"`
	UID          string        `bson:"uid"`
	AccessToken  string        `bson:"access_token,omitempty"`
	RefreshToken string        `bson:"refresh_token,omitempty"`
	Token        string        `bson:"token,omitempty"`
	TokenSecret  string        `bson:"token_secret,omitempty"`
	Profile      bson.M        `bson:"profile,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
