package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	ID        bson.ObjectID `json:"id"        bson:"_id,omitempty"`
	Content   string        `json:"content"   bson:"content"`
	UserID    bson.ObjectID `json:"userId"    bson:"user_id"`
	PostID    bson.ObjectID `json:"postId"    bson:"post_id"`
	ImageURL  string        `json:"imageUrl,omitempty"  bson:"image_url,omitempty"`
	IsDeleted bool          `json:"isDeleted" bson:"is_deleted"`
	DeletedAt *time.Time    `json:"deletedAt,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}
