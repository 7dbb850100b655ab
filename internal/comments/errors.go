package comments

import (
	"errors"
	"fmt"
)

// Kind classe les erreurs rencontrées au niveau d'un fichier ou d'un dossier.
type Kind int

const (
	// KindNotFound : dossier racine ou dossier de chaîne absent.
	KindNotFound Kind = iota + 1
	// KindMalformedInput : JSON illisible, le fichier est ignoré.
	KindMalformedInput
	// KindMissingField : champ obligatoire absent, l'enregistrement est écarté
	// sans erreur. Sert uniquement au comptage.
	KindMissingField
	// KindUnreadable : erreur d'E/S autre que "fichier absent".
	KindUnreadable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindMalformedInput:
		return "malformed input"
	case KindMissingField:
		return "missing field"
	case KindUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyInput   = errors.New("fichier vide")
	ErrTrailingData = errors.New("données après la valeur JSON")
)

// FileError identifie le fichier (ou dossier) fautif et la nature du problème.
type FileError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IsKind indique si err (ou une erreur qu'il enveloppe) est un FileError du type k.
func IsKind(err error, k Kind) bool {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind == k
	}
	return false
}
