package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/model"
)

const DefaultFeedLimit = 10

type FeedStore interface {
	Page(ctx context.Context, q model.FeedPageQuery) ([]model.FeedPost, int64, error)
}

type FeedService struct {
	Store FeedStore
	Now   func() time.Time
}

func NewFeedService(store FeedStore) *FeedService {
	return &FeedService{Store: store, Now: time.Now}
}

// GetFeed produces one page of the viewer's feed. An out-of-range page is not
// an error: when at least one post matches, the query is silently re-run
// against the last valid page and that page is returned instead.
func (s *FeedService) GetFeed(ctx context.Context, viewerID bson.ObjectID, q model.FeedQuery) (*model.FeedPage, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultFeedLimit
	}
	if q.Page < 1 {
		q.Page = 1
	}

	pq := model.FeedPageQuery{
		ViewerID: viewerID,
		Since:    TimeWindow(q.Mode, s.Now()),
		Sort:     SortCondition(q.Mode),
		Skip:     (q.Page - 1) * q.Limit,
		Limit:    q.Limit,
	}

	items, total, err := s.Store.Page(ctx, pq)
	if err != nil {
		return nil, err
	}

	page := q.Page
	totalPages := (total + q.Limit - 1) / q.Limit
	if total > 0 && page > totalPages {
		page = totalPages
		pq.Skip = (page - 1) * q.Limit
		if items, total, err = s.Store.Page(ctx, pq); err != nil {
			return nil, err
		}
		totalPages = (total + q.Limit - 1) / q.Limit
	}

	return &model.FeedPage{
		Data: items,
		Meta: model.PageMeta{
			TotalItems:   total,
			ItemCount:    len(items),
			ItemsPerPage: q.Limit,
			TotalPages:   totalPages,
			CurrentPage:  page,
		},
	}, nil
}

// TimeWindow returns the lower creation-time bound for a mode. Only the
// most_interacted modes are windowed; everything else starts at the epoch.
func TimeWindow(mode string, now time.Time) time.Time {
	switch mode {
	case model.ModeMostInteractedToday:
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case model.ModeMostInteractedWeek:
		return now.UTC().AddDate(0, 0, -7)
	case model.ModeMostInteractedMonth:
		return now.UTC().AddDate(0, 0, -30)
	default:
		return time.Unix(0, 0).UTC()
	}
}

// SortCondition maps a feed mode to its aggregation sort document.
func SortCondition(mode string) bson.D {
	switch mode {
	case model.ModeNewest, model.ModeLatest:
		return bson.D{{Key: "created_at", Value: -1}}
	case model.ModeMostLiked:
		return bson.D{{Key: "likes_count", Value: -1}, {Key: "created_at", Value: -1}}
	case model.ModeRecentInteraction:
		return bson.D{{Key: "lastActivity", Value: -1}}
	case model.ModeMostInteractedToday, model.ModeMostInteractedWeek, model.ModeMostInteractedMonth:
		return bson.D{{Key: "interactionScore", Value: -1}, {Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}
