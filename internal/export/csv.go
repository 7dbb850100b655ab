// Package export écrit les artefacts CSV (et la base SQLite optionnelle)
// à partir des structures produites par overlap et stats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/patrickprogramme/ytaudience/internal/fsutil"
)

// Noms de fichiers fixes.
const (
	JaccardFile       = "jaccard_index.csv"
	CommentCountsFile = "comment_counts.csv"
	ReplyStatsFile    = "reply_counts_statistics.csv"
	FilteredFile      = "filtered_comments.csv"
)

var bucketPrefix = map[int]string{1: "single", 2: "dual", 3: "triple"}

// BucketFile retourne le nom du CSV d'un bucket : single_channel_users.csv,
// dual_channel_users_detailed.csv... puis <k>_channel_users.csv au-delà de 3.
func BucketFile(k int, detailed bool) string {
	prefix, ok := bucketPrefix[k]
	if !ok {
		prefix = fmt.Sprintf("%d", k)
	}
	name := prefix + "_channel_users"
	if detailed {
		name += "_detailed"
	}
	return name + ".csv"
}

// SaveCSV écrit path de manière atomique ; fn reçoit le writer CSV.
func SaveCSV(path string, fn func(cw *csv.Writer) error) error {
	err := fsutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := fn(cw); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return fmt.Errorf("écriture %s: %w", path, err)
	}
	return nil
}
