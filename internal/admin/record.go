package admin

import (
	"strconv"
	"strings"

	"github.com/Vovarama1992/visus/internal/models"
)

// Record is a fetched entity. Exactly one of Doctor, Review and Media is
// set, matching Kind.
type Record struct {
	Kind   Kind
	Doctor *models.Doctor
	Review *models.Review
	Media  *models.MediaAsset
}

func DoctorRecord(d models.Doctor) Record { return Record{Kind: KindDoctor, Doctor: &d} }

func ReviewRecord(r models.Review) Record { return Record{Kind: KindReview, Review: &r} }

// MediaRecord wraps m under the media kind of its category.
func MediaRecord(m models.MediaAsset) Record {
	kind := KindMediaDiagnostics
	if m.Category == models.CategoryInterior {
		kind = KindMediaInterior
	}
	return Record{Kind: kind, Media: &m}
}

func (r Record) ID() int {
	switch {
	case r.Doctor != nil:
		return r.Doctor.ID
	case r.Review != nil:
		return r.Review.ID
	case r.Media != nil:
		return r.Media.ID
	}
	return 0
}

func (r Record) Title() string {
	switch {
	case r.Doctor != nil:
		return r.Doctor.Name
	case r.Review != nil:
		return r.Review.PatientName
	case r.Media != nil:
		if r.Media.Title == "" {
			return "Без названия"
		}
		return r.Media.Title
	}
	return ""
}

func (r Record) Subtitle() string {
	switch {
	case r.Doctor != nil:
		return strings.TrimSpace(r.Doctor.Role + " · " + strconv.Itoa(r.Doctor.ExperienceYears))
	case r.Review != nil:
		rating := r.Review.Rating
		if rating == 0 {
			rating = models.DefaultRating
		}
		return "★ " + strconv.Itoa(rating)
	case r.Media != nil:
		return r.Media.Category
	}
	return ""
}

// ImagePath is the stored canonical media path of the record.
func (r Record) ImagePath() string {
	switch {
	case r.Doctor != nil:
		return r.Doctor.PhotoURL
	case r.Review != nil:
		return r.Review.PosterURL
	case r.Media != nil:
		return r.Media.PhotoURL
	}
	return ""
}
