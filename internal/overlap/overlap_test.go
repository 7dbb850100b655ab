package overlap

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytaudience/internal/dataset"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

func rec(author, name string, ch model.Channel, likes int, at string) model.CommentRecord {
	return model.CommentRecord{
		AuthorID:    author,
		AuthorName:  name,
		VideoID:     "v-" + string(ch),
		CommentID:   fmt.Sprintf("%s-%s-%s", author, ch, at),
		Text:        "txt",
		LikeCount:   likes,
		PublishedAt: at,
		Channel:     ch,
	}
}

// usersOf construit Users avec les auteurs donnés par chaîne.
func usersOf(byChannel map[model.Channel][]string) Users {
	u := make(Users)
	for ch, ids := range byChannel {
		for _, id := range ids {
			u.Add(rec(id, id, ch, 1, "2024-01-01T00:00:00Z"))
		}
	}
	return u
}

func TestJaccard_ExampleAB(t *testing.T) {
	u := usersOf(map[model.Channel][]string{
		"A": {"u1", "u2", "u3"},
		"B": {"u2", "u3", "u4"},
	})
	pairs := BuildIndex(u).Pairs()
	require.Len(t, pairs, 1)

	r := pairs[0]
	assert.Equal(t, model.Channel("A"), r.Channel1)
	assert.Equal(t, model.Channel("B"), r.Channel2)
	assert.Equal(t, 2, r.Intersection)
	assert.Equal(t, 4, r.Union)
	assert.InDelta(t, 0.5, r.Index, 1e-12)
	assert.Equal(t, 1, r.Ch1Only)
	assert.Equal(t, 1, r.Ch2Only)
	assert.Equal(t, 3, r.UsersCh1)
	assert.Equal(t, 3, r.UsersCh2)
}

func TestJaccard_Properties(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identique", []string{"x", "y"}, []string{"x", "y"}, 1},
		{"disjoint", []string{"x"}, []string{"y", "z"}, 0},
		{"partiel", []string{"x", "y", "z"}, []string{"z"}, 1.0 / 3},
		{"vide", nil, nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := usersOf(map[model.Channel][]string{"A": tc.a, "B": tc.b})
			r := BuildIndex(u, "A", "B").Compare("A", "B")

			assert.InDelta(t, tc.want, r.Index, 1e-12)
			assert.GreaterOrEqual(t, r.Index, 0.0)
			assert.LessOrEqual(t, r.Index, 1.0)
			assert.Equal(t, r.Union, r.Intersection+r.Ch1Only+r.Ch2Only)
		})
	}
}

func TestPairs_OrderAndCount(t *testing.T) {
	u := usersOf(map[model.Channel][]string{
		"Pakistan":   {"a"},
		"Bangladesh": {"a", "b"},
		"India":      {"c"},
	})
	idx := BuildIndex(u, "Nepal")
	pairs := idx.Pairs()

	var names []string
	for _, p := range pairs {
		names = append(names, string(p.Channel1)+"/"+string(p.Channel2))
	}
	assert.Equal(t, []string{
		"Bangladesh/India", "Bangladesh/Nepal", "Bangladesh/Pakistan",
		"India/Nepal", "India/Pakistan", "Nepal/Pakistan",
	}, names)
	assert.Equal(t, 3, idx.TotalDistinct())
	assert.Equal(t, 0, idx.Size("Nepal"))
}

func TestAggregate_OrderIndependent(t *testing.T) {
	recs := []model.CommentRecord{
		rec("u1", "@alice", "India", 3, "2024-01-03T00:00:00Z"),
		rec("u1", "@alice_old", "Pakistan", 5, "2024-01-01T00:00:00Z"),
		rec("u1", "@alice", "India", 0, "2024-01-04T00:00:00Z"),
		rec("u2", "@bob", "India", 7, "2024-01-02T00:00:00Z"),
		rec("u2", "@bobby", "India", 1, "2024-01-02T00:00:00Z"),
		rec("u3", "", "Bangladesh", 2, ""),
	}

	type snapshot struct {
		Channels []model.Channel
		Names    []string
		Display  string
		Likes    int
		Count    int
		Per      []ChannelTally
		IDs      []string
	}
	snap := func(u Users) map[string]snapshot {
		out := make(map[string]snapshot)
		for id, p := range u {
			ids := make([]string, 0, len(p.Comments))
			for _, c := range p.Comments {
				ids = append(ids, c.CommentID)
			}
			slices.Sort(ids)
			out[id] = snapshot{p.Channels(), p.Usernames(), p.DisplayName(), p.TotalLikes, p.TotalComments, p.PerChannel(), ids}
		}
		return out
	}

	ref := make(Users)
	ref.AddAll(slices.Values(recs))
	want := snap(ref)

	r := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		shuffled := slices.Clone(recs)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		u := make(Users)
		u.AddAll(slices.Values(shuffled))
		assert.Equal(t, want, snap(u))
	}

	assert.Equal(t, "@alice_old", want["u1"].Display)
	assert.Equal(t, "@bob", want["u2"].Display)
	assert.Equal(t, model.UnknownAuthor, want["u3"].Display)
	assert.Equal(t, 8, want["u1"].Likes)
	assert.Equal(t, []ChannelTally{{"India", 2, 3}, {"Pakistan", 1, 5}}, want["u1"].Per)
}

func TestAggregate_Invariants(t *testing.T) {
	u := make(Users)
	u.Add(rec("u1", "a", "India", 2, "1"))
	u.Add(rec("u1", "a", "Pakistan", 4, "2"))
	assert.False(t, u.Add(rec("", "ghost", "India", 9, "3")))

	p := u["u1"]
	require.NotNil(t, p)
	assert.Equal(t, len(p.Comments), p.TotalComments)
	sum := 0
	for _, c := range p.Comments {
		sum += c.LikeCount
		assert.True(t, p.HasChannel(c.Channel))
	}
	assert.Equal(t, sum, p.TotalLikes)
	assert.Equal(t, 2, p.ChannelCount())
	assert.Len(t, u, 1)
}

func TestPartition_DisjointAndExhaustive(t *testing.T) {
	u := usersOf(map[model.Channel][]string{
		"A": {"u1", "u2", "u3", "u5"},
		"B": {"u2", "u3", "u4"},
		"C": {"u3", "u6"},
	})
	buckets := Partition(u)

	seen := make(map[string]int)
	for k, ps := range buckets {
		for _, p := range ps {
			seen[p.AuthorID]++
			assert.Equal(t, k, p.ChannelCount())
		}
	}
	assert.Len(t, seen, len(u))
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}

	assert.Len(t, ByChannelCount(u, 1), 4)
	assert.Len(t, ByChannelCount(u, 2), 1)
	assert.Len(t, ByChannelCount(u, 3), 1)
	assert.Empty(t, ByChannelCount(u, 4))
}

func TestSingleChannelBreakdownAndCombinations(t *testing.T) {
	u := usersOf(map[model.Channel][]string{
		"India":      {"a", "b", "c", "d", "e"},
		"Pakistan":   {"a", "b", "c", "f"},
		"Bangladesh": {"d", "e", "g"},
	})

	assert.Equal(t, []ChannelCount{{"Bangladesh", 1}, {"Pakistan", 1}},
		SingleChannelBreakdown(ByChannelCount(u, 1)))

	combos := Combinations(ByChannelCount(u, 2))
	require.Len(t, combos, 2)
	assert.Equal(t, "India + Pakistan", combos[0].Label(" + "))
	assert.Equal(t, 3, combos[0].Users)
	assert.Equal(t, "Bangladesh + India", combos[1].Label(" + "))
	assert.Equal(t, 2, combos[1].Users)
}

func TestStatsAndTop(t *testing.T) {
	u := make(Users)
	u.Add(rec("u1", "a", "A", 10, "1"))
	u.Add(rec("u2", "b", "A", 30, "1"))
	u.Add(rec("u2", "b", "A", 2, "2"))
	u.Add(rec("u3", "c", "A", 10, "1"))

	ps := ByChannelCount(u, 1)
	s := Stats(ps)
	assert.Equal(t, BucketStats{Users: 3, TotalComments: 4, TotalLikes: 52, AvgComments: 4.0 / 3, AvgLikes: 52.0 / 3}, s)

	top := TopByLikes(ps, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "u2", top[0].AuthorID)
	assert.Equal(t, "u1", top[1].AuthorID) // égalité de likes : author_id
	assert.Equal(t, BucketStats{}, Stats(nil))
}

const pageTmpl = `{"items": [%s]}`

func item(author string, likes int) string {
	a := ""
	if author != "" {
		a = fmt.Sprintf(`"authorChannelId": {"value": %q},`, author)
	}
	return fmt.Sprintf(`{"id": "t", "snippet": {"topLevelComment": {"id": "c-%s", "snippet": {%s "authorDisplayName": "n", "textDisplay": "x", "likeCount": %d, "videoId": "v"}}}}`, author, a, likes)
}

func writePage(t *testing.T, root, folder, video, name string, items ...string) {
	t.Helper()
	dir := filepath.Join(root, folder, video)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	body := fmt.Sprintf(pageTmpl, strings.Join(items, ","))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "IndiaComments", "v1", "p1.json", item("u1", 1), item("u2", 2), item("", 50))
	writePage(t, root, "IndiaComments", "v1", "p2.json", item("u3", 3))
	writePage(t, root, "PakistanComments", "v9", "p1.json", item("u2", 4), item("u3", 5), item("u4", 6))
	require.NoError(t, os.WriteFile(filepath.Join(root, "PakistanComments", "v9", "broken.json"), []byte("{"), 0o644))

	rep, err := Run(context.Background(), RunConfig{
		Root: root,
		Rules: []dataset.Rule{
			{Label: "India", Match: []string{"india"}},
			{Label: "Pakistan", Match: []string{"pakistan"}},
			{Label: "Bangladesh", Match: []string{"bangladesh"}},
		},
		UnknownFolders: dataset.PolicySkip,
		Log:            zerolog.Nop(),
	})
	require.NoError(t, err)

	assert.Len(t, rep.Users, 4)
	assert.Equal(t, 6, rep.Records)
	assert.Equal(t, 4, rep.TotalDistinct)
	assert.Len(t, rep.Bucket(1), 2)
	assert.Len(t, rep.Bucket(2), 2)
	assert.Equal(t, 2, rep.MaxChannelCount())
	assert.Equal(t, 1, rep.Walk.Channel("Pakistan").Skipped)
	assert.Equal(t, 1, rep.Walk.Channel("India").Unattributed)

	// Bangladesh est amorcée par les règles : 3 paires
	require.Len(t, rep.Jaccard, 3)
	ip := rep.Jaccard[2]
	assert.Equal(t, model.Channel("India"), ip.Channel1)
	assert.Equal(t, model.Channel("Pakistan"), ip.Channel2)
	assert.Equal(t, 2, ip.Intersection)
	assert.Equal(t, 4, ip.Union)
	_, ghost := rep.Users[""]
	assert.False(t, ghost)
}

func TestRun_MissingRoot(t *testing.T) {
	_, err := Run(context.Background(), RunConfig{Root: filepath.Join(t.TempDir(), "nope"), Log: zerolog.Nop()})
	require.Error(t, err)
}
