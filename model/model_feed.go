package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Feed sort modes. Unknown values fall back to newest.
const (
	ModeNewest              = "newest"
	ModeLatest              = "latest"
	ModeMostLiked           = "most_liked"
	ModeRecentInteraction   = "recent_interaction"
	ModeMostInteractedToday = "most_interacted_today"
	ModeMostInteractedWeek  = "most_interacted_week"
	ModeMostInteractedMonth = "most_interacted_month"
)

// FeedQuery is what a client asks for.
type FeedQuery struct {
	Mode  string
	Page  int64
	Limit int64
}

// FeedPageQuery is the resolved query the repository executes: the service has
// already turned mode into a time window and a sort condition.
type FeedPageQuery struct {
	ViewerID bson.ObjectID
	Since    time.Time
	Sort     bson.D
	Skip     int64
	Limit    int64
}

type AuthorInfo struct {
	Name   string `json:"name"   bson:"name"`
	Avatar string `json:"avatar" bson:"avatar"`
}

type CommentPreview struct {
	ID        bson.ObjectID `json:"id"        bson:"_id"`
	Content   string        `json:"content"   bson:"content"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	Commenter AuthorInfo    `json:"commenter" bson:"commenter"`
}

// FeedPost is a post enriched by the feed pipeline.
type FeedPost struct {
	Post                 `bson:",inline"`
	InteractionScore     int              `json:"interactionScore" bson:"interactionScore"`
	LastActivity         time.Time        `json:"lastActivity"     bson:"lastActivity"`
	Author               AuthorInfo       `json:"author"           bson:"author"`
	LatestComments       []CommentPreview `json:"latestComments"   bson:"latestComments"`
	IsLikedByCurrentUser bool             `json:"isLikedByCurrentUser" bson:"isLikedByCurrentUser"`
}

type PageMeta struct {
	TotalItems   int64 `json:"totalItems"`
	ItemCount    int   `json:"itemCount"`
	ItemsPerPage int64 `json:"itemsPerPage"`
	TotalPages   int64 `json:"totalPages"`
	CurrentPage  int64 `json:"currentPage"`
}

type FeedPage struct {
	Data []FeedPost `json:"data"`
	Meta PageMeta   `json:"meta"`
}
