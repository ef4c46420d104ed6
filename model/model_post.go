package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID            bson.ObjectID `json:"id"            bson:"_id,omitempty"`
	Title         string        `json:"title"         bson:"title"`
	Content       string        `json:"content"       bson:"content"`
	AuthorID      bson.ObjectID `json:"authorId"      bson:"author_id"`
	LikesCount    int           `json:"likesCount"    bson:"likes_count"`
	CommentsCount int           `json:"commentsCount" bson:"comments_count"`
	ImageURL      string        `json:"imageUrl,omitempty"  bson:"image_url,omitempty"`
	IsDeleted     bool          `json:"isDeleted"     bson:"is_deleted"`
	DeletedAt     *time.Time    `json:"deletedAt,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"     bson:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt"     bson:"updated_at"`
}
