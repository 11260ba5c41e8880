package site

import (
	"context"
	"testing"

	"github.com/Vovarama1992/visus/internal/mediapath"
	"github.com/Vovarama1992/visus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LoadNormalises(t *testing.T) {
	api := newFakeAPI(t, map[string]string{
		"/api/doctors":           `[{"id":1,"name":"Иванова","role":"Офтальмолог","experience_years":12,"description_kk":"Сипаттама","photo_url":"doctors/a.jpg"}]`,
		"/api/reviews":           `[{"id":4,"patient_name":"Айгерим","text_ru":"Спасибо","poster_url":"reviews/p.jpg"}]`,
		"/api/services":          `[{"id":1,"slug":"check","title_ru":"Проверка","title_kk":"Тексеру"}]`,
		"/api/media/diagnostics": `[{"id":2,"title":"ОКТ","photo_url":"diagnostics/oct.jpg"}]`,
		"/api/media/interior":    `[]`,
	})

	c := NewClient(api.url(), 0, nopLogger()).Load(context.Background())

	require.Len(t, c.Doctors, 1)
	assert.Equal(t, 12, c.Doctors[0].ExperienceYears)
	assert.Equal(t, "Сипаттама", c.Doctors[0].Description("ru"))

	require.Len(t, c.Reviews, 1)
	assert.Equal(t, models.DefaultRating, c.Reviews[0].Rating)
	assert.Equal(t, "reviews/p.jpg", c.Reviews[0].PosterURL)

	require.Len(t, c.Services, 1)
	assert.True(t, c.Services[0].IsActive)

	require.Len(t, c.Diagnostics, 1)
	assert.Equal(t, models.CategoryDiagnostics, c.Diagnostics[0].Category)

	require.Len(t, c.Interior, 1)
	assert.Equal(t, -1, c.Interior[0].ID)
	assert.Equal(t, mediapath.Placeholder, c.Interior[0].PhotoURL)
}

func TestClient_LoadFallbacks(t *testing.T) {
	api := newFakeAPI(t, map[string]string{})

	c := NewClient(api.url(), 0, nopLogger()).Load(context.Background())

	assert.Empty(t, c.Doctors)
	assert.Empty(t, c.Services)
	assert.Equal(t, FallbackReviews, c.Reviews)
	assert.Equal(t, []models.MediaAsset{{ID: -1, Category: "diagnostics", PhotoURL: mediapath.Placeholder}}, c.Diagnostics)
	assert.Equal(t, []models.MediaAsset{{ID: -1, Category: "interior", PhotoURL: mediapath.Placeholder}}, c.Interior)
}

func TestClient_LoadBrokenJSON(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"/api/doctors": `{"not":"a list"`})

	c := NewClient(api.url(), 0, nopLogger()).Load(context.Background())
	assert.Empty(t, c.Doctors)
}

func TestClient_Book(t *testing.T) {
	api := newFakeAPI(t, nil)

	require.NoError(t, NewClient(api.url(), 0, nopLogger()).Book(context.Background(), "Асель", "+77010000000"))
	require.Len(t, api.Posted(), 1)
	assert.JSONEq(t, `{"name":"Асель","phone":"+77010000000"}`, api.Posted()[0])
}
