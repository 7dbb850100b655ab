package comments

import (
	"iter"

	"github.com/patrickprogramme/ytaudience/pkg/model"
)

// Document est une page de commentaires décodée.
type Document struct {
	Path    string
	threads []rawThread
}

// Thread est la vue normalisée d'un item : le commentaire racine du fil.
type Thread struct {
	ID          string
	VideoID     string
	AuthorID    string
	AuthorName  string
	Text        string
	LikeCount   int
	PublishedAt string
	ReplyCount  int
}

// Len retourne le nombre d'items de la page, avec ou sans snippet.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.threads)
}

// Threads itère sur les items qui ont un snippet, dans l'ordre du fichier.
// Le snippet de topLevelComment est prioritaire sur celui de l'item.
func (d *Document) Threads() iter.Seq[Thread] {
	return func(yield func(Thread) bool) {
		if d == nil {
			return
		}
		for _, it := range d.threads {
			th, ok := normalize(it)
			if !ok {
				continue
			}
			if !yield(th) {
				return
			}
		}
	}
}

// Records itère paresseusement sur les commentaires attribuables, étiquetés
// avec ch. Les items sans authorChannelId sont écartés silencieusement.
func (d *Document) Records(ch model.Channel) iter.Seq[model.CommentRecord] {
	return func(yield func(model.CommentRecord) bool) {
		for th := range d.Threads() {
			if th.AuthorID == "" {
				continue
			}
			if !yield(th.Record(ch)) {
				return
			}
		}
	}
}

// Unattributed compte les items avec snippet mais sans auteur identifiable.
func (d *Document) Unattributed() int {
	n := 0
	for th := range d.Threads() {
		if th.AuthorID == "" {
			n++
		}
	}
	return n
}

// Record convertit le fil en CommentRecord pour la chaîne ch.
func (t Thread) Record(ch model.Channel) model.CommentRecord {
	return model.CommentRecord{
		AuthorID:    t.AuthorID,
		AuthorName:  t.AuthorName,
		VideoID:     t.VideoID,
		CommentID:   t.ID,
		Text:        t.Text,
		LikeCount:   t.LikeCount,
		PublishedAt: t.PublishedAt,
		Channel:     ch,
		ReplyCount:  t.ReplyCount,
	}
}

func normalize(it rawThread) (Thread, bool) {
	if it.Snippet == nil {
		return Thread{}, false
	}

	// par défaut : les champs portés par l'item lui-même
	id := it.ID
	cs := &it.Snippet.rawCommentSnippet
	if top := it.Snippet.TopLevelComment; top != nil {
		id = top.ID
		cs = top.Snippet
		if cs == nil {
			// topLevelComment sans snippet : rien d'exploitable à part le compteur
			cs = &rawCommentSnippet{}
		}
	}

	videoID := cs.VideoID
	if videoID == "" {
		videoID = it.Snippet.VideoID
	}

	name := cs.AuthorDisplayName
	if name == "" {
		name = model.UnknownAuthor
	}

	likes := cs.LikeCount
	if likes < 0 {
		likes = 0
	}

	return Thread{
		ID:          id,
		VideoID:     videoID,
		AuthorID:    cs.authorID(),
		AuthorName:  name,
		Text:        cs.TextDisplay,
		LikeCount:   likes,
		PublishedAt: cs.PublishedAt,
		ReplyCount:  it.Snippet.TotalReplyCount,
	}, true
}
