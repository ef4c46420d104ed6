package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/model"
)

// ===== MongoDB stage/keyword constants =====
const (
	StageMatch       = "$match"
	StageLookup      = "$lookup"
	StageUnwind      = "$unwind"
	StageAddFields   = "$addFields"
	StageProject     = "$project"
	StageSort        = "$sort"
	StageSkip        = "$skip"
	StageLimit       = "$limit"
	StageFacet       = "$facet"
	StageCount       = "$count"
	StageGroup       = "$group"
	StageReplaceRoot = "$replaceRoot"

	KeyFrom         = "from"
	KeyLocalField   = "localField"
	KeyForeignField = "foreignField"
	KeyAs           = "as"
	KeyPipeline     = "pipeline"
	KeyLet          = "let"
)

type FeedRepository struct {
	ColPosts *mongo.Collection
}

func NewFeedRepository(db *mongo.Database) *FeedRepository {
	return &FeedRepository{ColPosts: db.Collection("posts")}
}

// feedPipeline builds the enrichment stages shared by the paged feed and the
// export: window filter, score derivation, author join (a strict unwind drops
// posts whose author no longer resolves), latest-2 live comments with
// commenter info, and the viewer-like flag.
func feedPipeline(viewerID bson.ObjectID, since time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: StageMatch, Value: bson.M{
			"is_deleted": false,
			"created_at": bson.M{"$gte": since},
		}}},

		{{Key: StageAddFields, Value: bson.M{
			"interactionScore": bson.M{"$add": bson.A{"$likes_count", "$comments_count"}},
			"lastActivity":     bson.M{"$ifNull": bson.A{"$updated_at", "$created_at"}},
		}}},

		{{Key: StageLookup, Value: bson.M{
			KeyFrom:         "users",
			KeyLocalField:   "author_id",
			KeyForeignField: "_id",
			KeyAs:           "author",
		}}},
		{{Key: StageUnwind, Value: "$author"}},

		{{Key: StageLookup, Value: bson.M{
			KeyFrom: "comments",
			KeyLet:  bson.M{"pid": "$_id"},
			KeyPipeline: mongo.Pipeline{
				{{Key: StageMatch, Value: bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$post_id", "$$pid"}},
					bson.M{"$eq": bson.A{"$is_deleted", false}},
				}}}}},
				{{Key: StageSort, Value: bson.D{{Key: "created_at", Value: -1}}}},
				{{Key: StageLimit, Value: 2}},
				{{Key: StageLookup, Value: bson.M{
					KeyFrom:         "users",
					KeyLocalField:   "user_id",
					KeyForeignField: "_id",
					KeyAs:           "commenter",
				}}},
				{{Key: StageUnwind, Value: bson.M{"path": "$commenter", "preserveNullAndEmptyArrays": true}}},
				{{Key: StageProject, Value: bson.M{
					"content":          1,
					"created_at":       1,
					"commenter.name":   1,
					"commenter.avatar": 1,
				}}},
			},
			KeyAs: "latestComments",
		}}},

		{{Key: StageLookup, Value: bson.M{
			KeyFrom: "likes",
			KeyLet:  bson.M{"pid": "$_id"},
			KeyPipeline: mongo.Pipeline{
				{{Key: StageMatch, Value: bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$post_id", "$$pid"}},
					bson.M{"$eq": bson.A{"$user_id", viewerID}},
				}}}}},
			},
			KeyAs: "likedData",
		}}},
		{{Key: StageAddFields, Value: bson.M{
			"isLikedByCurrentUser": bson.M{"$gt": bson.A{bson.M{"$size": "$likedData"}, 0}},
		}}},

		{{Key: StageProject, Value: bson.M{
			"likedData":    0,
			"author.email": 0,
		}}},
	}
}

// Page runs the feed pipeline and returns one page plus the total match count.
// The count comes from the same pipeline run (a $facet), so it reflects the
// enriched set, not just the raw match.
func (r *FeedRepository) Page(ctx context.Context, q model.FeedPageQuery) ([]model.FeedPost, int64, error) {
	pipe := feedPipeline(q.ViewerID, q.Since)
	pipe = append(pipe,
		bson.D{{Key: StageSort, Value: q.Sort}},
		bson.D{{Key: StageFacet, Value: bson.M{
			"data": mongo.Pipeline{
				{{Key: StageSkip, Value: q.Skip}},
				{{Key: StageLimit, Value: q.Limit}},
			},
			"total": mongo.Pipeline{
				{{Key: StageCount, Value: "value"}},
			},
		}}},
	)

	cur, err := r.ColPosts.Aggregate(ctx, pipe, options.Aggregate())
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []struct {
		Data  []model.FeedPost `bson:"data"`
		Total []struct {
			Value int64 `bson:"value"`
		} `bson:"total"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	if len(out) == 0 {
		return nil, 0, nil
	}

	var total int64
	if len(out[0].Total) > 0 {
		total = out[0].Total[0].Value
	}
	return out[0].Data, total, nil
}

// All returns the whole enriched, sorted window without pagination. Used by
// the export pipeline; the viewer-like flag is meaningless there, so callers
// pass bson.NilObjectID.
func (r *FeedRepository) All(ctx context.Context, since time.Time, sort bson.D) ([]model.FeedPost, error) {
	pipe := feedPipeline(bson.NilObjectID, since)
	pipe = append(pipe, bson.D{{Key: StageSort, Value: sort}})

	cur, err := r.ColPosts.Aggregate(ctx, pipe, options.Aggregate())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []model.FeedPost
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
