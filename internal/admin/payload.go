package admin

import (
	"fmt"
	"strconv"
	"strings"
)

// Payload is the request body of a create or update. Each kind has its own
// variant carrying only its fields.
type Payload interface {
	Kind() Kind
}

type DoctorPayload struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	ExperienceYears int    `json:"experienceYears"`
	DescriptionRu   string `json:"descriptionRu"`
	DescriptionKk   string `json:"descriptionKk"`
	PhotoURL        string `json:"photoUrl"`
}

func (DoctorPayload) Kind() Kind { return KindDoctor }

type ReviewPayload struct {
	PatientName string `json:"patientName"`
	Rating      int    `json:"rating"`
	TextRu      string `json:"textRu"`
	TextKk      string `json:"textKk"`
	VideoURL    string `json:"videoUrl"`
	PosterURL   string `json:"posterUrl"`
}

func (ReviewPayload) Kind() Kind { return KindReview }

type MediaPayload struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
}

func (p MediaPayload) Kind() Kind {
	if p.Category == KindMediaInterior.Category() {
		return KindMediaInterior
	}
	return KindMediaDiagnostics
}

// canonicalFields is the priority list of form fields holding the media
// path of each kind. The first non-empty one wins; uploads write into the
// first one.
var canonicalFields = map[Kind][]Field{
	KindDoctor:           {FieldPhotoURL, FieldPosterURL},
	KindReview:           {FieldPosterURL, FieldPhotoURL},
	KindMediaDiagnostics: {FieldMediaURL},
	KindMediaInterior:    {FieldMediaURL},
}

// CanonicalPath returns the current media path of kind and the field it
// was taken from. Both are empty when no field holds a path.
func CanonicalPath(kind Kind, f *Form) (string, Field) {
	for _, field := range canonicalFields[kind] {
		if v := strings.TrimSpace(f.Get(field)); v != "" {
			return v, field
		}
	}
	return "", ""
}

// PrimaryField is the field an upload for kind is written into.
func PrimaryField(kind Kind) Field {
	if fields := canonicalFields[kind]; len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// BuildPayload projects the fields of kind into its request body.
// experienceYears falls back to 0 and rating to 5 when blank or not a
// number.
func BuildPayload(kind Kind, f *Form) (Payload, error) {
	photo, _ := CanonicalPath(kind, f)

	switch kind {
	case KindDoctor:
		return DoctorPayload{
			Name:            f.Get(FieldName),
			Role:            f.Get(FieldRole),
			ExperienceYears: parseIntOr(f.Get(FieldExperienceYears), 0),
			DescriptionRu:   f.Get(FieldDescriptionRu),
			DescriptionKk:   f.Get(FieldDescriptionKk),
			PhotoURL:        photo,
		}, nil
	case KindReview:
		return ReviewPayload{
			PatientName: f.Get(FieldPatientName),
			Rating:      parseIntOr(f.Get(FieldRating), 5),
			TextRu:      f.Get(FieldTextRu),
			TextKk:      f.Get(FieldTextKk),
			VideoURL:    f.Get(FieldVideoURL),
			PosterURL:   photo,
		}, nil
	case KindMediaDiagnostics, KindMediaInterior:
		return MediaPayload{
			Category:    kind.Category(),
			Title:       f.Get(FieldMediaTitle),
			Description: f.Get(FieldMediaDescription),
			PhotoURL:    photo,
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrValidation, kind)
}

func parseIntOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
