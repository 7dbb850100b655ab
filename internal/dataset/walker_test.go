package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytaudience/internal/comments"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

// page construit une page JSON minimale, un item par auteur ("" = sans authorChannelId).
func page(video string, authors ...string) string {
	items := make([]string, 0, len(authors))
	for i, a := range authors {
		author := ""
		if a != "" {
			author = fmt.Sprintf(`"authorChannelId": {"value": %q},`, a)
		}
		items = append(items, fmt.Sprintf(`{
  "id": "t-%d",
  "snippet": {
    "videoId": %q,
    "totalReplyCount": 0,
    "topLevelComment": {
      "id": "c-%d",
      "snippet": {%s "authorDisplayName": "name-%d", "textDisplay": "txt", "likeCount": 1, "publishedAt": "2024-01-01T00:00:00Z", "videoId": %q}
    }
  }
}`, i, video, i, author, i, video))
	}
	return `{"kind": "youtube#commentThreadListResponse", "items": [` + strings.Join(items, ",") + `]}`
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func collect(t *testing.T, w *Walker) ([]model.CommentRecord, *Stats) {
	t.Helper()
	var recs []model.CommentRecord
	stats, err := w.Walk(context.Background(), Visitor{
		OnDocument: func(f File, doc *comments.Document) {
			for r := range doc.Records(f.Channel) {
				recs = append(recs, r)
			}
		},
	})
	require.NoError(t, err)
	return recs, stats
}

func TestWalk_MalformedFileIsSkipped(t *testing.T) {
	root := t.TempDir()
	for i := range 10 {
		p := filepath.Join(root, "India_Channel", fmt.Sprintf("vid-%02d", i), "page1.json")
		if i == 4 {
			writeFile(t, p, `{"items": [`)
			continue
		}
		writeFile(t, p, page(fmt.Sprintf("vid-%02d", i), fmt.Sprintf("UC-%d", i)))
	}

	w := New(root, NewChannelMapper([]Rule{{Label: "India"}}, PolicyKeep), zerolog.Nop())
	recs, stats := collect(t, w)

	assert.Len(t, recs, 9)
	cs := stats.Channel("India")
	assert.Equal(t, 10, cs.Videos)
	assert.Equal(t, 9, cs.Files)
	assert.Equal(t, 1, cs.Skipped)
	for _, r := range recs {
		assert.Equal(t, model.Channel("India"), r.Channel)
	}
}

func TestWalk_MappingAndPolicy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "IndiaTV", "v1", "a.json"), page("v1", "UC-a", ""))
	writeFile(t, filepath.Join(root, "pak_news", "v2", "a.json"), page("v2", "UC-b"))
	writeFile(t, filepath.Join(root, "Other", "v3", "a.json"), page("v3", "UC-c"))
	writeFile(t, filepath.Join(root, "Other", "v3", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, "stray.json"), page("x", "UC-z"))

	rules := []Rule{
		{Label: "India", Match: []string{"india"}},
		{Label: "Pakistan", Match: []string{"PAK"}},
	}

	tests := []struct {
		name   string
		policy Policy
		labels []model.Channel
		recs   int
	}{
		{"keep", PolicyKeep, []model.Channel{"India", "Other", "Pakistan"}, 3},
		{"skip", PolicySkip, []model.Channel{"India", "Pakistan"}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := New(root, NewChannelMapper(rules, tc.policy), zerolog.Nop())
			recs, stats := collect(t, w)
			assert.Len(t, recs, tc.recs)
			assert.Equal(t, tc.labels, stats.Labels())
			assert.Equal(t, 1, stats.Channel("India").Unattributed)
		})
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent"), nil, zerolog.Nop())
	_, err := w.Walk(context.Background(), Visitor{})
	require.Error(t, err)
	assert.True(t, comments.IsKind(err, comments.KindNotFound))
}

func TestWalkChannel(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "India", "v1", "a.json"), page("v1", "UC-a"))
	writeFile(t, filepath.Join(root, "Pakistan", "v2", "a.json"), page("v2", "UC-b"))
	w := New(root, nil, zerolog.Nop())

	var videos []string
	stats, err := w.WalkChannel(context.Background(), "Pakistan", Visitor{
		OnVideo: func(f File) { videos = append(videos, f.VideoID) },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, videos)
	assert.Equal(t, []model.Channel{"Pakistan"}, stats.Labels())

	_, err = w.WalkChannel(context.Background(), "Bangladesh", Visitor{})
	require.Error(t, err)
	assert.True(t, comments.IsKind(err, comments.KindNotFound))
	assert.ErrorIs(t, err, ErrNoChannelFolder)
}

func TestWalk_ContextCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "India", "v1", "a.json"), page("v1", "UC-a"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(root, nil, zerolog.Nop()).Walk(ctx, Visitor{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyKeep, p)

	p, err = ParsePolicy(" SKIP ")
	require.NoError(t, err)
	assert.Equal(t, PolicySkip, p)

	_, err = ParsePolicy("drop")
	assert.Error(t, err)
}
