package model

import "fmt"

// UnknownAuthor remplace un nom d'auteur absent du dump.
const UnknownAuthor = "Unknown"

// CommentRecord est un commentaire normalisé extrait d'un dump commentThreads.
// Valeur immuable : on la copie, on ne la modifie pas.
type CommentRecord struct {
	AuthorID    string  `json:"author_id"`
	AuthorName  string  `json:"author_name"`
	VideoID     string  `json:"video_id"`
	CommentID   string  `json:"comment_id"`
	Text        string  `json:"text"`
	LikeCount   int     `json:"like_count"`
	PublishedAt string  `json:"published_at"` // timestamp opaque (RFC3339 chez YouTube)
	Channel     Channel `json:"channel"`
	ReplyCount  int     `json:"reply_count"`
}

func (r CommentRecord) String() string {
	return fmt.Sprintf("CommentRecord(author=%s, video=%s, comment=%s, channel=%s)",
		r.AuthorID, r.VideoID, r.CommentID, r.Channel)
}

// Attributable indique si le commentaire peut être rattaché à un utilisateur.
func (r CommentRecord) Attributable() bool {
	return r.AuthorID != ""
}
