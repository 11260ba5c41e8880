// Package admin is the content console: a flat entity form shared by the
// four record kinds, a REST client for the admin API and the controller
// that keeps them in sync.
package admin

import (
	"fmt"
	"strings"

	"github.com/Vovarama1992/visus/internal/models"
)

// Kind selects which record type the console is working on.
type Kind string

const (
	KindDoctor           Kind = "doctor"
	KindReview           Kind = "review"
	KindMediaDiagnostics Kind = "mediaDiagnostics"
	KindMediaInterior    Kind = "mediaInterior"
)

// Kinds lists every kind in menu order.
var Kinds = []Kind{KindDoctor, KindReview, KindMediaDiagnostics, KindMediaInterior}

var kindAliases = map[string]Kind{
	"doctor":           KindDoctor,
	"doctors":          KindDoctor,
	"review":           KindReview,
	"reviews":          KindReview,
	"mediadiagnostics": KindMediaDiagnostics,
	"diagnostics":      KindMediaDiagnostics,
	"mediainterior":    KindMediaInterior,
	"interior":         KindMediaInterior,
}

// ParseKind accepts kind identifiers, collection names and media
// categories, case-insensitively.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(s)))
	if k, ok := kindAliases[key]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrValidation, s)
}

func (k Kind) IsMedia() bool {
	return k == KindMediaDiagnostics || k == KindMediaInterior
}

// Category is the media category of a media kind, "" otherwise.
func (k Kind) Category() string {
	switch k {
	case KindMediaDiagnostics:
		return models.CategoryDiagnostics
	case KindMediaInterior:
		return models.CategoryInterior
	}
	return ""
}

// Path is the admin collection path relative to /admin.
func (k Kind) Path() string {
	switch k {
	case KindDoctor:
		return "doctors"
	case KindReview:
		return "reviews"
	}
	return "media/" + k.Category()
}

// Folder is the upload folder. Media kinds upload into their category
// folder, not into a folder named after the kind.
func (k Kind) Folder() string {
	if k.IsMedia() {
		return k.Category()
	}
	return k.Path()
}

func (k Kind) Label() string {
	switch k {
	case KindDoctor:
		return "Врачи"
	case KindReview:
		return "Отзывы"
	case KindMediaDiagnostics:
		return "Диагностика (фото)"
	case KindMediaInterior:
		return "Интерьер"
	}
	return string(k)
}
