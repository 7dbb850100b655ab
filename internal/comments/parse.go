package comments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ParseBytes parse une page commentThreads déjà en mémoire.
// path sert uniquement à identifier le fichier dans les erreurs.
func ParseBytes(path string, b []byte) (*Document, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, &FileError{Path: path, Kind: KindMalformedInput, Err: ErrEmptyInput}
	}
	return ParseReader(path, bytes.NewReader(b))
}

// ParseReader parse depuis un io.Reader.
// Pas de DisallowUnknownFields() : les dumps YouTube contiennent beaucoup de
// champs qu'on ne mappe pas (etag, canReply, isPublic...).
func ParseReader(path string, r io.Reader) (*Document, error) {
	var raw rawThreadList
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmptyInput
		}
		return nil, &FileError{Path: path, Kind: KindMalformedInput, Err: fmt.Errorf("decode: %w", err)}
	}
	// une page = une seule valeur JSON, suivie au plus d'espaces
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &FileError{Path: path, Kind: KindMalformedInput, Err: ErrTrailingData}
	}
	return &Document{Path: path, threads: raw.Items}, nil
}

// ParseFile ouvre, décode et ferme le fichier : le handle n'est tenu que le
// temps du décodage.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := KindUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			kind = KindNotFound
		}
		return nil, &FileError{Path: path, Kind: kind, Err: err}
	}
	defer f.Close()

	return ParseReader(path, f)
}
