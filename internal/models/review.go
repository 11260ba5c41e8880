package models

import "encoding/json"

const DefaultRating = 5

type Review struct {
	ID          int    `db:"id" json:"id"`
	PatientName string `db:"patient_name" json:"patientName"`
	Rating      int    `db:"rating" json:"rating"`
	TextRu      string `db:"text_ru" json:"textRu"`
	TextKk      string `db:"text_kk" json:"textKk"`
	VideoURL    string `db:"video_url" json:"videoUrl"` // прямая ссылка или embed-фрагмент, не разбирается
	PosterURL   string `db:"poster_url" json:"posterUrl"`
}

func (r Review) Text(lang string) string {
	return Localized(lang, r.TextRu, r.TextKk)
}

func (r *Review) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             int     `json:"id"`
		PatientName    *string `json:"patientName"`
		PatientNameAlt *string `json:"patient_name"`
		Rating         *int    `json:"rating"`
		TextRu         *string `json:"textRu"`
		TextRuAlt      *string `json:"text_ru"`
		TextKk         *string `json:"textKk"`
		TextKkAlt      *string `json:"text_kk"`
		VideoURL       *string `json:"videoUrl"`
		VideoURLAlt    *string `json:"video_url"`
		PosterURL      *string `json:"posterUrl"`
		PosterURLAlt   *string `json:"poster_url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rating, ok := pickInt(raw.Rating)
	if !ok {
		rating = DefaultRating
	}
	*r = Review{
		ID:          raw.ID,
		PatientName: pick(raw.PatientName, raw.PatientNameAlt),
		Rating:      rating,
		TextRu:      pick(raw.TextRu, raw.TextRuAlt),
		TextKk:      pick(raw.TextKk, raw.TextKkAlt),
		VideoURL:    pick(raw.VideoURL, raw.VideoURLAlt),
		PosterURL:   pick(raw.PosterURL, raw.PosterURLAlt),
	}
	return nil
}
