package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/apperr"
	"socialfeed/model"
)

type fakeFeedLister struct {
	since time.Time
	sort  bson.D
	posts []model.FeedPost
}

func (f *fakeFeedLister) All(_ context.Context, since time.Time, sort bson.D) ([]model.FeedPost, error) {
	f.since = since
	f.sort = sort
	return f.posts, nil
}

func exportFixture() []model.FeedPost {
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return []model.FeedPost{
		{
			Post: model.Post{
				Title:         "hello",
				LikesCount:    3,
				CommentsCount: 2,
				CreatedAt:     created,
			},
			Author: model.AuthorInfo{Name: "alice", Avatar: "http://cdn/a.png"},
			LatestComments: []model.CommentPreview{
				{Content: "first", Commenter: model.AuthorInfo{Name: "bob"}},
				{Content: "second", Commenter: model.AuthorInfo{Name: "carol"}},
			},
		},
	}
}

func TestExportRows(t *testing.T) {
	rows := ExportRows(exportFixture())
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"Title", "Author", "Avatar", "Likes", "Comments", "Latest Comments", "Created At"}, rows[0])
	assert.Equal(t, []string{
		"hello", "alice", "http://cdn/a.png", "3", "2",
		"bob: first | carol: second",
		"2026-08-30T12:00:00Z",
	}, rows[1])
}

func TestExportCSV(t *testing.T) {
	store := &fakeFeedLister{posts: exportFixture()}
	svc := NewExportService(store)
	svc.Now = fixedNow

	file, err := svc.Export(context.Background(), model.ModeMostLiked, FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "posts_2026-08-31.csv", file.Name)
	assert.Equal(t, "text/csv", file.ContentType)
	// The feed's window and sort are reused for the mode.
	assert.Equal(t, SortCondition(model.ModeMostLiked), store.sort)
	assert.Equal(t, TimeWindow(model.ModeMostLiked, fixedNow()), store.since)

	parsed, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, "hello", parsed[1][0])
}

func TestExportXLSX(t *testing.T) {
	svc := NewExportService(&fakeFeedLister{posts: exportFixture()})
	svc.Now = fixedNow

	file, err := svc.Export(context.Background(), model.ModeNewest, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "posts_2026-08-31.xlsx", file.Name)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Posts", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Title", header)

	title, err := f.GetCellValue("Posts", "A2")
	require.NoError(t, err)
	assert.Equal(t, "hello", title)

	likes, err := f.GetCellValue("Posts", "D2")
	require.NoError(t, err)
	assert.Equal(t, "3", likes)
}

func TestExportZipContainsBoth(t *testing.T) {
	svc := NewExportService(&fakeFeedLister{posts: exportFixture()})
	svc.Now = fixedNow

	file, err := svc.Export(context.Background(), model.ModeNewest, FormatZip)
	require.NoError(t, err)
	assert.Equal(t, "application/zip", file.ContentType)

	zr, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	names := []string{zr.File[0].Name, zr.File[1].Name}
	assert.Contains(t, names, "posts_2026-08-31.csv")
	assert.Contains(t, names, "posts_2026-08-31.xlsx")
}

func TestExportUnknownFormat(t *testing.T) {
	svc := NewExportService(&fakeFeedLister{})
	svc.Now = fixedNow

	_, err := svc.Export(context.Background(), model.ModeNewest, "pdf")
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}
