package comments

// rawThreadList représente la réponse brute de commentThreads.list telle
// qu'elle a été sauvegardée sur disque (une page de pagination par fichier).
type rawThreadList struct {
	Kind          string      `json:"kind,omitempty"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
	Items         []rawThread `json:"items"`
}

type rawThread struct {
	ID      string            `json:"id"`
	Snippet *rawThreadSnippet `json:"snippet,omitempty"`
	// On ignore volontairement "replies" : les réponses ne sont jamais comptées
	// individuellement, seul le commentaire racine l'est.
}

// rawThreadSnippet est le snippet d'un item. Quand topLevelComment est absent,
// certains dumps portent directement les champs du commentaire : d'où l'embed.
type rawThreadSnippet struct {
	rawCommentSnippet
	TopLevelComment *rawComment `json:"topLevelComment,omitempty"`
	TotalReplyCount int         `json:"totalReplyCount"`
}

type rawComment struct {
	ID      string             `json:"id"`
	Snippet *rawCommentSnippet `json:"snippet,omitempty"`
}

type rawCommentSnippet struct {
	AuthorChannelID   *rawAuthorChannelID `json:"authorChannelId,omitempty"`
	AuthorDisplayName string              `json:"authorDisplayName"`
	TextDisplay       string              `json:"textDisplay"`
	LikeCount         int                 `json:"likeCount"`
	PublishedAt       string              `json:"publishedAt"`
	VideoID           string              `json:"videoId"`
}

type rawAuthorChannelID struct {
	Value string `json:"value"`
}

// authorID retourne l'identifiant de chaîne de l'auteur, "" si absent.
func (s *rawCommentSnippet) authorID() string {
	if s == nil || s.AuthorChannelID == nil {
		return ""
	}
	return s.AuthorChannelID.Value
}
