package models

import "encoding/json"

const (
	CategoryDiagnostics = "diagnostics"
	CategoryInterior    = "interior"
)

// IsMediaCategory reports whether category is one of the gallery categories.
func IsMediaCategory(category string) bool {
	return category == CategoryDiagnostics || category == CategoryInterior
}

type MediaAsset struct {
	ID          int    `db:"id" json:"id"`
	Category    string `db:"category" json:"category"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	PhotoURL    string `db:"photo_url" json:"photoUrl"` // абсолютный URL или путь в хранилище
}

func (m *MediaAsset) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          int     `json:"id"`
		Category    string  `json:"category"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		PhotoURL    *string `json:"photoUrl"`
		PhotoURLAlt *string `json:"photo_url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = MediaAsset{
		ID:          raw.ID,
		Category:    raw.Category,
		Title:       pick(raw.Title),
		Description: pick(raw.Description),
		PhotoURL:    pick(raw.PhotoURL, raw.PhotoURLAlt),
	}
	return nil
}

// UploadResult is returned by the upload endpoint: the public URL of the
// stored object and its storage-relative path.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}
