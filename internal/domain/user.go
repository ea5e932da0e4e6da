package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered exercise tracker account.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"` // Unique across users
	CreatedAt time.Time          `bson:"createdAt" json:"-"`
}
