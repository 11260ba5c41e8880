package site

import (
	"embed"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/Vovarama1992/visus/internal/mediapath"
	"github.com/Vovarama1992/visus/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Booking outcomes shown on the page after POST /booking.
const (
	BookingOK    = "ok"
	BookingError = "error"
)

type doctorView struct {
	Name        string
	Role        string
	Years       int
	Description string
	Photo       string
}

type reviewView struct {
	Name     string
	Stars    string
	Text     string
	VideoURL string
	Poster   string
}

type serviceView struct {
	Slug        string
	Title       string
	Description string
	Full        string
}

type mediaView struct {
	Title       string
	Description string
	Photo       string
}

type pageView struct {
	bundle *Bundle

	Lang        string
	Languages   []string
	Booking     string
	Doctors     []doctorView
	Reviews     []reviewView
	Services    []serviceView
	Diagnostics []mediaView
	Interior    []mediaView
}

// T translates key into the page language.
func (v pageView) T(key string) string { return v.bundle.T(v.Lang, key) }

// Renderer turns Content into the public page.
type Renderer struct {
	tmpl   *template.Template
	bundle *Bundle
	media  *mediapath.Resolver
}

func NewRenderer(bundle *Bundle, media *mediapath.Resolver) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, bundle: bundle, media: media}, nil
}

func (r *Renderer) Render(w io.Writer, lang, booking string, c Content) error {
	return r.tmpl.ExecuteTemplate(w, "page.html", r.view(lang, booking, c))
}

func (r *Renderer) view(lang, booking string, c Content) pageView {
	v := pageView{
		bundle:    r.bundle,
		Lang:      lang,
		Languages: Languages,
		Booking:   booking,
	}

	for _, d := range c.Doctors {
		v.Doctors = append(v.Doctors, doctorView{
			Name:        d.Name,
			Role:        d.Role,
			Years:       d.ExperienceYears,
			Description: d.Description(lang),
			Photo:       r.media.Resolve(d.PhotoURL),
		})
	}

	for i, rv := range c.Reviews {
		name := rv.PatientName
		if name == "" {
			name = r.bundle.T(lang, "reviews.fallbackName") + " №" + strconv.Itoa(i+1)
		}
		v.Reviews = append(v.Reviews, reviewView{
			Name:     name,
			Stars:    stars(rv.Rating),
			Text:     rv.Text(lang),
			VideoURL: rv.VideoURL,
			Poster:   r.media.Resolve(rv.PosterURL),
		})
	}

	for _, s := range c.Services {
		if !s.IsActive {
			continue
		}
		v.Services = append(v.Services, serviceView{
			Slug:        s.Slug,
			Title:       models.Localized(lang, s.TitleRu, s.TitleKk),
			Description: models.Localized(lang, s.ShortDescriptionRu, s.ShortDescriptionKk),
			Full:        models.Localized(lang, s.FullDescriptionRu, s.FullDescriptionKk),
		})
	}

	v.Diagnostics = r.mediaViews(c.Diagnostics)
	v.Interior = r.mediaViews(c.Interior)
	return v
}

func (r *Renderer) mediaViews(list []models.MediaAsset) []mediaView {
	out := make([]mediaView, 0, len(list))
	for _, m := range list {
		out = append(out, mediaView{
			Title:       m.Title,
			Description: m.Description,
			Photo:       r.media.Resolve(m.PhotoURL),
		})
	}
	return out
}

// stars renders rating as 1..5 stars; 0 counts as 5.
func stars(rating int) string {
	if rating <= 0 || rating > 5 {
		rating = models.DefaultRating
	}
	return strings.Repeat("★", rating)
}
