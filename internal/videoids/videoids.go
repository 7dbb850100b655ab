// Package videoids extrait les identifiants de vidéos d'un export CSV de
// recherche YouTube (colonne 2 : chemin d'URL "/watch?v=..." ou "/shorts/...").
package videoids

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/patrickprogramme/ytaudience/internal/fsutil"
)

type Encoding string

const (
	// UTF16 : UTF-16 avec BOM (petit-boutiste par défaut), format des exports Excel.
	UTF16 Encoding = "utf-16"
	UTF8  Encoding = "utf-8"
)

func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-16", "utf16":
		return UTF16, nil
	case "utf-8", "utf8":
		return UTF8, nil
	default:
		return "", fmt.Errorf("encodage inconnu: %q (utf-16|utf-8)", s)
	}
}

var ErrUnknownFormat = errors.New("format d'URL inconnu")

// FromURLPath retourne l'id contenu dans path : après "v=" sinon après
// "/shorts/", coupé au premier "&".
func FromURLPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	var rest string
	if _, after, ok := strings.Cut(path, "v="); ok {
		rest = after
	} else if _, after, ok := strings.Cut(path, "/shorts/"); ok {
		rest = after
	} else {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
	id, _, _ := strings.Cut(rest, "&")
	if id == "" {
		return "", fmt.Errorf("id vide: %q", path)
	}
	return id, nil
}

// Skipped décrit une ligne ignorée (numérotée à partir de 0, en-tête compris).
type Skipped struct {
	Row    int
	Reason string
}

type Result struct {
	IDs     []string
	Skipped []Skipped
}

// Extract lit le CSV r et relève les ids de la colonne 2.
func Extract(r io.Reader, enc Encoding) (*Result, error) {
	if enc == UTF16 {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		r = transform.NewReader(r, dec)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	res := &Result{}
	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("ligne %d: %w", i, err)
		}
		if len(row) < 2 {
			res.Skipped = append(res.Skipped, Skipped{Row: i, Reason: fmt.Sprintf("moins de 2 colonnes: %v", row)})
			continue
		}
		id, err := FromURLPath(row[1])
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Row: i, Reason: err.Error()})
			continue
		}
		res.IDs = append(res.IDs, id)
	}
	return res, nil
}

// ExtractFile lit in et écrit un id par ligne dans out (écriture atomique).
func ExtractFile(in, out string, enc Encoding) (*Result, error) {
	f, err := os.Open(in)
	if err != nil {
		return nil, fmt.Errorf("ouverture %s: %w", in, err)
	}
	defer f.Close()

	res, err := Extract(f, enc)
	if err != nil {
		return res, fmt.Errorf("%s: %w", in, err)
	}

	err = fsutil.WriteAtomic(out, 0o644, func(w io.Writer) error {
		for _, id := range res.IDs {
			if _, err := io.WriteString(w, id+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("écriture %s: %w", out, err)
	}
	return res, nil
}
