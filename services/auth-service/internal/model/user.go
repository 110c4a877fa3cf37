package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a local user account. The first successful login from a
// given provider account creates one, named after the provider profile's
// display name.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email,omitempty"`
	AvatarURL string        `bson:"avatar_url,omitempty"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
