package export

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/patrickprogramme/ytaudience/internal/overlap"
	"github.com/patrickprogramme/ytaudience/internal/stats"
)

var JaccardHeader = []string{
	"Channel_Pair", "Channel_1", "Channel_2", "Jaccard_Index", "Jaccard_Percentage",
	"Users_Ch1", "Users_Ch2", "Intersection", "Union", "Ch1_Only", "Ch2_Only",
}

// PairName : "India vs Pakistan".
func PairName(r overlap.JaccardResult) string {
	return fmt.Sprintf("%s vs %s", r.Channel1, r.Channel2)
}

func WriteJaccard(cw *csv.Writer, results []overlap.JaccardResult) error {
	if err := cw.Write(JaccardHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{
			PairName(r),
			string(r.Channel1),
			string(r.Channel2),
			fmt.Sprintf("%.6f", r.Index),
			fmt.Sprintf("%.4f%%", r.Index*100),
			strconv.Itoa(r.UsersCh1),
			strconv.Itoa(r.UsersCh2),
			strconv.Itoa(r.Intersection),
			strconv.Itoa(r.Union),
			strconv.Itoa(r.Ch1Only),
			strconv.Itoa(r.Ch2Only),
		}); err != nil {
			return err
		}
	}
	return nil
}

var CommentCountsHeader = []string{
	"Channel", "Videos", "Comments", "Avg_Comments",
	"Max_Video_ID", "Max_Comments", "Min_Video_ID", "Min_Comments",
}

// WriteCommentCounts écrit une ligne par chaîne puis la ligne TOTAL.
func WriteCommentCounts(cw *csv.Writer, rep *stats.CountReport) error {
	if err := cw.Write(CommentCountsHeader); err != nil {
		return err
	}
	for _, c := range rep.Channels {
		if err := cw.Write([]string{
			string(c.Channel),
			strconv.Itoa(c.Videos),
			strconv.Itoa(c.Comments),
			fmt.Sprintf("%.1f", c.Average()),
			c.Max.VideoID,
			strconv.Itoa(c.Max.Comments),
			c.Min.VideoID,
			strconv.Itoa(c.Min.Comments),
		}); err != nil {
			return err
		}
	}
	t := rep.Totals()
	return cw.Write([]string{
		string(t.Channel),
		strconv.Itoa(t.Videos),
		strconv.Itoa(t.Comments),
		fmt.Sprintf("%.1f", t.Average()),
		"", "", "", "",
	})
}

// WriteReplyDistribution écrit la table reply_count -> frequency.
func WriteReplyDistribution(cw *csv.Writer, rs stats.ReplyStats) error {
	if err := cw.Write([]string{"reply_count", "frequency"}); err != nil {
		return err
	}
	for _, f := range rs.Distribution {
		if err := cw.Write([]string{strconv.Itoa(f.ReplyCount), strconv.Itoa(f.Frequency)}); err != nil {
			return err
		}
	}
	return nil
}
