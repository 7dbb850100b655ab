package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/patrickprogramme/ytaudience/internal/overlap"
)

var (
	SummaryHeader = []string{
		"User_ID", "Username", "Total_Comments", "Total_Likes",
		"Channels", "Comment_Count_Per_Channel", "Likes_Per_Channel",
	}
	DetailedHeader = []string{
		"User_ID", "Username", "Video_ID", "Comment_ID",
		"Comment_Text", "Channel", "Like_Count", "Published_At",
	}
)

var ErrBadHeader = errors.New("en-tête CSV inattendu")

// WriteUsersSummary écrit une ligne par profil, dans l'ordre reçu.
// Channels : "A,B" ; ventilations : "A:3|B:1".
func WriteUsersSummary(cw *csv.Writer, profiles []*overlap.UserProfile) error {
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	for _, p := range profiles {
		chs := p.Channels()
		names := make([]string, len(chs))
		for i, c := range chs {
			names[i] = string(c)
		}

		per := p.PerChannel()
		counts := make([]string, len(per))
		likes := make([]string, len(per))
		for i, t := range per {
			counts[i] = fmt.Sprintf("%s:%d", t.Channel, t.Comments)
			likes[i] = fmt.Sprintf("%s:%d", t.Channel, t.Likes)
		}

		if err := cw.Write([]string{
			p.AuthorID,
			p.DisplayName(),
			strconv.Itoa(p.TotalComments),
			strconv.Itoa(p.TotalLikes),
			strings.Join(names, ","),
			strings.Join(counts, "|"),
			strings.Join(likes, "|"),
		}); err != nil {
			return err
		}
	}
	return nil
}

// WriteUsersDetailed écrit un commentaire par ligne, profils dans l'ordre reçu,
// commentaires dans leur ordre de découverte.
func WriteUsersDetailed(cw *csv.Writer, profiles []*overlap.UserProfile) error {
	if err := cw.Write(DetailedHeader); err != nil {
		return err
	}
	for _, p := range profiles {
		name := p.DisplayName()
		for _, c := range p.Comments {
			if err := cw.Write([]string{
				p.AuthorID,
				name,
				c.VideoID,
				c.CommentID,
				c.Text,
				string(c.Channel),
				strconv.Itoa(c.LikeCount),
				c.PublishedAt,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// DetailedRow est une ligne relue d'un CSV détaillé.
type DetailedRow struct {
	UserID      string
	Username    string
	VideoID     string
	CommentID   string
	Text        string
	Channel     string
	LikeCount   int
	PublishedAt string
}

// ReadDetailed relit un CSV produit par WriteUsersDetailed.
func ReadDetailed(r io.Reader) ([]DetailedRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(DetailedHeader)

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("lecture en-tête: %w", err)
	}
	if strings.Join(head, ",") != strings.Join(DetailedHeader, ",") {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, head)
	}

	var rows []DetailedRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		likes, err := strconv.Atoi(rec[6])
		if err != nil {
			line, _ := cr.FieldPos(6)
			return nil, fmt.Errorf("ligne %d: Like_Count %q: %w", line, rec[6], err)
		}
		rows = append(rows, DetailedRow{
			UserID:      rec[0],
			Username:    rec[1],
			VideoID:     rec[2],
			CommentID:   rec[3],
			Text:        rec[4],
			Channel:     rec[5],
			LikeCount:   likes,
			PublishedAt: rec[7],
		})
	}
	return rows, nil
}

// FilterDetailed recopie les colonnes User_ID et Comment_Text d'un CSV
// détaillé (repérées par leur nom). Retourne le nombre de lignes écrites.
func FilterDetailed(r io.Reader, cw *csv.Writer) (int, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("lecture en-tête: %w", err)
	}
	userCol, textCol := -1, -1
	for i, h := range head {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case "User_ID":
			userCol = i
		case "Comment_Text":
			textCol = i
		}
	}
	if userCol < 0 || textCol < 0 {
		return 0, fmt.Errorf("%w: colonnes User_ID et Comment_Text requises", ErrBadHeader)
	}

	if err := cw.Write([]string{"User_ID", "Comment_Text"}); err != nil {
		return 0, err
	}
	n := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		if err := cw.Write([]string{rec[userCol], rec[textCol]}); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
