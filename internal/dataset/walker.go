// Package dataset parcourt l'arborescence des dumps de commentaires :
//
//	<root>/<DossierChaîne>/<VideoID>/<page>.json
//
// Chaque fichier est décodé puis transmis au Visitor. Une erreur sur un
// fichier est journalisée et comptée, elle n'interrompt jamais le parcours.
package dataset

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/patrickprogramme/ytaudience/internal/comments"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

const progressEvery = 100

var ErrNoChannelFolder = errors.New("aucun dossier ne correspond à cette chaîne")

// File situe un fichier (ou un dossier vidéo, pour OnVideo) dans l'arborescence.
type File struct {
	Channel model.Channel
	Folder  string // nom du dossier de chaîne
	VideoID string
	Path    string
}

// Visitor reçoit les évènements du parcours. Les champs nil sont ignorés.
type Visitor struct {
	OnVideo    func(v File)
	OnDocument func(f File, doc *comments.Document)
}

type Walker struct {
	root   string
	mapper *ChannelMapper
	log    zerolog.Logger
}

func New(root string, mapper *ChannelMapper, log zerolog.Logger) *Walker {
	if mapper == nil {
		mapper = NewChannelMapper(nil, PolicyKeep)
	}
	return &Walker{root: root, mapper: mapper, log: log}
}

func (w *Walker) Root() string {
	return w.root
}

func (w *Walker) Mapper() *ChannelMapper {
	return w.mapper
}

type channelFolder struct {
	name  string
	label model.Channel
}

// Walk parcourt toutes les chaînes reconnues sous la racine, dans l'ordre
// lexicographique des dossiers. Seule l'absence de la racine est fatale.
func (w *Walker) Walk(ctx context.Context, v Visitor) (*Stats, error) {
	folders, err := w.channelFolders()
	if err != nil {
		return nil, err
	}
	stats := newStats()
	for _, cf := range folders {
		if err := w.walkChannel(ctx, cf, v, stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// ChannelFolders retourne les noms des dossiers résolus en label.
// Aucun dossier -> FileError KindNotFound pour cette chaîne uniquement.
func (w *Walker) ChannelFolders(label model.Channel) ([]string, error) {
	folders, err := w.channelFolders()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, cf := range folders {
		if cf.label == label {
			names = append(names, cf.name)
		}
	}
	if len(names) == 0 {
		return nil, &comments.FileError{
			Path: filepath.Join(w.root, string(label)),
			Kind: comments.KindNotFound,
			Err:  ErrNoChannelFolder,
		}
	}
	return names, nil
}

// WalkChannel ne parcourt que les dossiers résolus en label.
func (w *Walker) WalkChannel(ctx context.Context, label model.Channel, v Visitor) (*Stats, error) {
	names, err := w.ChannelFolders(label)
	if err != nil {
		return newStats(), err
	}
	stats := newStats()
	for _, name := range names {
		if err := w.walkChannel(ctx, channelFolder{name: name, label: label}, v, stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (w *Walker) channelFolders() ([]channelFolder, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		kind := comments.KindUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			kind = comments.KindNotFound
		}
		return nil, &comments.FileError{Path: w.root, Kind: kind, Err: err}
	}

	var out []channelFolder
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		label, ok := w.mapper.Resolve(e.Name())
		if !ok {
			w.log.Debug().Str("folder", e.Name()).Msg("dossier non reconnu, ignoré")
			continue
		}
		out = append(out, channelFolder{name: e.Name(), label: label})
	}
	return out, nil
}

func (w *Walker) walkChannel(ctx context.Context, cf channelFolder, v Visitor, stats *Stats) error {
	cs := stats.Channel(cf.label)
	cs.Folders++

	dir := filepath.Join(w.root, cf.name)
	log := w.log.With().Str("channel", string(cf.label)).Str("folder", cf.name).Logger()

	videos, err := os.ReadDir(dir)
	if err != nil {
		// dossier illisible : on passe à la chaîne suivante
		log.Error().Err(err).Msg("lecture du dossier de chaîne impossible")
		return nil
	}

	for _, ve := range videos {
		if !ve.IsDir() {
			continue
		}
		cs.Videos++
		if cs.Videos%progressEvery == 0 {
			log.Debug().Int("videos", cs.Videos).Msg("progression")
		}

		vdir := filepath.Join(dir, ve.Name())
		if v.OnVideo != nil {
			v.OnVideo(File{Channel: cf.label, Folder: cf.name, VideoID: ve.Name(), Path: vdir})
		}

		pages, err := os.ReadDir(vdir)
		if err != nil {
			log.Warn().Err(err).Str("video", ve.Name()).Msg("lecture du dossier vidéo impossible")
			continue
		}
		for _, pe := range pages {
			if pe.IsDir() || !strings.HasSuffix(pe.Name(), ".json") {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			path := filepath.Join(vdir, pe.Name())
			doc, err := comments.ParseFile(path)
			if err != nil {
				cs.Skipped++
				log.Warn().Err(err).Str("path", path).Msg("fichier ignoré")
				continue
			}
			cs.Files++
			cs.Items += doc.Len()
			cs.Unattributed += doc.Unattributed()

			if v.OnDocument != nil {
				v.OnDocument(File{Channel: cf.label, Folder: cf.name, VideoID: ve.Name(), Path: path}, doc)
			}
		}
	}

	log.Info().Int("videos", cs.Videos).Int("files", cs.Files).Int("skipped", cs.Skipped).Msg("chaîne traitée")
	return nil
}
