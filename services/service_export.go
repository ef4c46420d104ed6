package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/apperr"
	"socialfeed/model"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatZip  = "zip"
)

type FeedLister interface {
	All(ctx context.Context, since time.Time, sort bson.D) ([]model.FeedPost, error)
}

type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportService flattens the enriched feed into tabular snapshots. It reuses
// the feed's window and sort for the given mode but never paginates and never
// touches the cache.
type ExportService struct {
	Store FeedLister
	Now   func() time.Time
}

func NewExportService(store FeedLister) *ExportService {
	return &ExportService{Store: store, Now: time.Now}
}

func (s *ExportService) Export(ctx context.Context, mode, format string) (*ExportFile, error) {
	now := s.Now()
	posts, err := s.Store.All(ctx, TimeWindow(mode, now), SortCondition(mode))
	if err != nil {
		return nil, err
	}

	rows := ExportRows(posts)
	stamp := now.UTC().Format("2006-01-02")

	switch format {
	case FormatCSV:
		data, err := writeCSV(rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Name:        "posts_" + stamp + ".csv",
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case FormatXLSX:
		data, err := writeXLSX(rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Name:        "posts_" + stamp + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case FormatZip:
		data, err := writeZip(rows, "posts_"+stamp)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Name:        "posts_" + stamp + ".zip",
			ContentType: "application/zip",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("format %q: %w", format, apperr.ErrInvalid)
	}
}

// ExportRows renders the header plus one row per post. Comment previews are
// collapsed into a single "name: content | name: content" cell.
func ExportRows(posts []model.FeedPost) [][]string {
	rows := make([][]string, 0, len(posts)+1)
	rows = append(rows, []string{
		"Title", "Author", "Avatar", "Likes", "Comments", "Latest Comments", "Created At",
	})
	for _, p := range posts {
		summaries := make([]string, 0, len(p.LatestComments))
		for _, c := range p.LatestComments {
			summaries = append(summaries, c.Commenter.Name+": "+c.Content)
		}
		rows = append(rows, []string{
			p.Title,
			p.Author.Name,
			p.Author.Avatar,
			strconv.Itoa(p.LikesCount),
			strconv.Itoa(p.CommentsCount),
			strings.Join(summaries, " | "),
			p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Posts"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeZip(rows [][]string, base string) ([]byte, error) {
	csvData, err := writeCSV(rows)
	if err != nil {
		return nil, err
	}
	xlsxData, err := writeXLSX(rows)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, entry := range []struct {
		name string
		data []byte
	}{
		{base + ".csv", csvData},
		{base + ".xlsx", xlsxData},
	} {
		fw, err := w.Create(entry.name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(entry.data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
