package admin

import (
	"fmt"
	"strconv"

	"github.com/Vovarama1992/visus/internal/models"
)

// Field is a key of the flat entity form.
type Field string

const (
	FieldTargetID Field = "targetId"

	FieldName            Field = "name"
	FieldRole            Field = "role"
	FieldExperienceYears Field = "experienceYears"
	FieldDescriptionRu   Field = "descriptionRu"
	FieldDescriptionKk   Field = "descriptionKk"
	FieldPhotoURL        Field = "photoUrl"

	FieldPatientName Field = "patientName"
	FieldRating      Field = "rating"
	FieldTextRu      Field = "textRu"
	FieldTextKk      Field = "textKk"
	FieldVideoURL    Field = "videoUrl"
	FieldPosterURL   Field = "posterUrl"

	FieldMediaTitle       Field = "mediaTitle"
	FieldMediaDescription Field = "mediaDescription"
	FieldMediaURL         Field = "mediaUrl"
)

const defaultRatingText = "5"

var allFields = []Field{
	FieldTargetID,
	FieldName, FieldRole, FieldExperienceYears, FieldDescriptionRu, FieldDescriptionKk, FieldPhotoURL,
	FieldPatientName, FieldRating, FieldTextRu, FieldTextKk, FieldVideoURL, FieldPosterURL,
	FieldMediaTitle, FieldMediaDescription, FieldMediaURL,
}

// kindFields are the fields shown and submitted for each kind.
var kindFields = map[Kind][]Field{
	KindDoctor:           {FieldName, FieldRole, FieldExperienceYears, FieldDescriptionRu, FieldDescriptionKk, FieldPhotoURL},
	KindReview:           {FieldPatientName, FieldRating, FieldTextRu, FieldTextKk, FieldVideoURL, FieldPosterURL},
	KindMediaDiagnostics: {FieldMediaTitle, FieldMediaDescription, FieldMediaURL},
	KindMediaInterior:    {FieldMediaTitle, FieldMediaDescription, FieldMediaURL},
}

// FieldsOf returns the form fields that belong to kind, targetId excluded.
func FieldsOf(kind Kind) []Field {
	return append([]Field(nil), kindFields[kind]...)
}

func ParseField(s string) (Field, error) {
	for _, f := range allFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown field %q", ErrValidation, s)
}

// Form is the flat field set shared by every kind. It is a superset of all
// entity fields; only the fields of the active kind are meaningful.
type Form struct {
	values  map[Field]string
	editing bool
}

func NewForm() *Form {
	f := &Form{}
	f.Clear()
	return f
}

// Clear resets every field to its default and leaves edit mode.
func (f *Form) Clear() {
	f.values = make(map[Field]string, len(allFields))
	for _, field := range allFields {
		f.values[field] = ""
	}
	f.values[FieldRating] = defaultRatingText
	f.editing = false
}

func (f *Form) Get(field Field) string { return f.values[field] }

func (f *Form) Set(field Field, value string) error {
	if _, ok := f.values[field]; !ok {
		return fmt.Errorf("%w: unknown field %q", ErrValidation, field)
	}
	f.values[field] = value
	return nil
}

func (f *Form) TargetID() string { return f.values[FieldTargetID] }

func (f *Form) Editing() bool { return f.editing }

// Values returns a copy of all fields.
func (f *Form) Values() map[Field]string {
	out := make(map[Field]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *Form) Clone() *Form {
	return &Form{values: f.Values(), editing: f.editing}
}

// Populate copies record into the form, sets targetId and enters edit
// mode. Fields of other kinds keep their values; BuildPayload ignores them.
func (f *Form) Populate(kind Kind, rec Record) error {
	if rec.Kind != kind {
		return fmt.Errorf("%w: %s record used as %s", ErrValidation, rec.Kind, kind)
	}

	switch {
	case kind == KindDoctor && rec.Doctor != nil:
		f.populateDoctor(*rec.Doctor)
	case kind == KindReview && rec.Review != nil:
		f.populateReview(*rec.Review)
	case kind.IsMedia() && rec.Media != nil:
		f.populateMedia(*rec.Media)
	default:
		return fmt.Errorf("%w: empty %s record", ErrValidation, kind)
	}
	f.editing = true
	return nil
}

func (f *Form) populateDoctor(d models.Doctor) {
	f.values[FieldTargetID] = strconv.Itoa(d.ID)
	f.values[FieldName] = d.Name
	f.values[FieldRole] = d.Role
	f.values[FieldExperienceYears] = strconv.Itoa(d.ExperienceYears)
	f.values[FieldDescriptionRu] = d.DescriptionRu
	f.values[FieldDescriptionKk] = d.DescriptionKk
	f.values[FieldPhotoURL] = d.PhotoURL
}

func (f *Form) populateReview(r models.Review) {
	rating := defaultRatingText
	if r.Rating != 0 {
		rating = strconv.Itoa(r.Rating)
	}
	f.values[FieldTargetID] = strconv.Itoa(r.ID)
	f.values[FieldPatientName] = r.PatientName
	f.values[FieldRating] = rating
	f.values[FieldTextRu] = r.TextRu
	f.values[FieldTextKk] = r.TextKk
	f.values[FieldVideoURL] = r.VideoURL
	f.values[FieldPosterURL] = r.PosterURL
}

func (f *Form) populateMedia(m models.MediaAsset) {
	f.values[FieldTargetID] = strconv.Itoa(m.ID)
	f.values[FieldMediaTitle] = m.Title
	f.values[FieldMediaDescription] = m.Description
	f.values[FieldMediaURL] = m.PhotoURL
}
