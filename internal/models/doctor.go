package models

import "encoding/json"

type Doctor struct {
	ID              int    `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	Role            string `db:"role" json:"role"`
	ExperienceYears int    `db:"experience_years" json:"experienceYears"`
	DescriptionRu   string `db:"description_ru" json:"descriptionRu"`
	DescriptionKk   string `db:"description_kk" json:"descriptionKk"`
	PhotoURL        string `db:"photo_url" json:"photoUrl"`
}

// Description returns the text for lang, falling back to the other language
// when the requested one is empty.
func (d Doctor) Description(lang string) string {
	return Localized(lang, d.DescriptionRu, d.DescriptionKk)
}

func (d *Doctor) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                 int     `json:"id"`
		Name               string  `json:"name"`
		Role               string  `json:"role"`
		ExperienceYears    *int    `json:"experienceYears"`
		ExperienceYearsAlt *int    `json:"experience_years"`
		DescriptionRu      *string `json:"descriptionRu"`
		DescriptionRuAlt   *string `json:"description_ru"`
		DescriptionKk      *string `json:"descriptionKk"`
		DescriptionKkAlt   *string `json:"description_kk"`
		PhotoURL           *string `json:"photoUrl"`
		PhotoURLAlt        *string `json:"photo_url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	years, _ := pickInt(raw.ExperienceYears, raw.ExperienceYearsAlt)
	*d = Doctor{
		ID:              raw.ID,
		Name:            raw.Name,
		Role:            raw.Role,
		ExperienceYears: years,
		DescriptionRu:   pick(raw.DescriptionRu, raw.DescriptionRuAlt),
		DescriptionKk:   pick(raw.DescriptionKk, raw.DescriptionKkAlt),
		PhotoURL:        pick(raw.PhotoURL, raw.PhotoURLAlt),
	}
	return nil
}

// Localized picks the kk text for lang "kk" and the ru text otherwise,
// falling back to the other language if the chosen one is empty.
func Localized(lang, ru, kk string) string {
	if lang == "kk" {
		if kk != "" {
			return kk
		}
		return ru
	}
	if ru != "" {
		return ru
	}
	return kk
}
