package models

import "encoding/json"

type ServiceItem struct {
	ID                 int    `db:"id" json:"id"`
	Slug               string `db:"slug" json:"slug"`
	TitleRu            string `db:"title_ru" json:"titleRu"`
	TitleKk            string `db:"title_kk" json:"titleKk"`
	ShortDescriptionRu string `db:"short_description_ru" json:"shortDescriptionRu"`
	ShortDescriptionKk string `db:"short_description_kk" json:"shortDescriptionKk"`
	FullDescriptionRu  string `db:"full_description_ru" json:"fullDescriptionRu"`
	FullDescriptionKk  string `db:"full_description_kk" json:"fullDescriptionKk"`
	IsActive           bool   `db:"is_active" json:"isActive"`
}

func (s *ServiceItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                    int     `json:"id"`
		Slug                  string  `json:"slug"`
		TitleRu               *string `json:"titleRu"`
		TitleRuAlt            *string `json:"title_ru"`
		TitleKk               *string `json:"titleKk"`
		TitleKkAlt            *string `json:"title_kk"`
		ShortDescriptionRu    *string `json:"shortDescriptionRu"`
		ShortDescriptionRuAlt *string `json:"short_description_ru"`
		ShortDescriptionKk    *string `json:"shortDescriptionKk"`
		ShortDescriptionKkAlt *string `json:"short_description_kk"`
		FullDescriptionRu     *string `json:"fullDescriptionRu"`
		FullDescriptionRuAlt  *string `json:"full_description_ru"`
		FullDescriptionKk     *string `json:"fullDescriptionKk"`
		FullDescriptionKkAlt  *string `json:"full_description_kk"`
		IsActive              *bool   `json:"isActive"`
		IsActiveAlt           *bool   `json:"is_active"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	active, ok := pickBool(raw.IsActive, raw.IsActiveAlt)
	if !ok {
		active = true
	}
	*s = ServiceItem{
		ID:                 raw.ID,
		Slug:               raw.Slug,
		TitleRu:            pick(raw.TitleRu, raw.TitleRuAlt),
		TitleKk:            pick(raw.TitleKk, raw.TitleKkAlt),
		ShortDescriptionRu: pick(raw.ShortDescriptionRu, raw.ShortDescriptionRuAlt),
		ShortDescriptionKk: pick(raw.ShortDescriptionKk, raw.ShortDescriptionKkAlt),
		FullDescriptionRu:  pick(raw.FullDescriptionRu, raw.FullDescriptionRuAlt),
		FullDescriptionKk:  pick(raw.FullDescriptionKk, raw.FullDescriptionKkAlt),
		IsActive:           active,
	}
	return nil
}
