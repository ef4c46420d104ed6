package model

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is owned by the profile subsystem; the feed only reads name and avatar.
type User struct {
	ID     bson.ObjectID `json:"id"     bson:"_id,omitempty"`
	Name   string        `json:"name"   bson:"name"`
	Email  string        `json:"email"  bson:"email"`
	Avatar string        `json:"avatar" bson:"avatar"`
}
