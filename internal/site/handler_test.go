package site

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Vovarama1992/visus/internal/mediapath"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, api *fakeAPI) http.Handler {
	t.Helper()
	bundle, err := NewBundle("ru")
	require.NoError(t, err)
	renderer, err := NewRenderer(bundle, mediapath.NewPublic("http://cdn.test/media"))
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandler(NewClient(api.url(), 0, nopLogger()), bundle, renderer, nopLogger()).RegisterRoutes(r)
	return r
}

func TestHandler_Page(t *testing.T) {
	api := newFakeAPI(t, map[string]string{
		"/api/doctors":  `[{"id":1,"name":"Иванова","role":"Офтальмолог","experienceYears":12,"descriptionRu":"Опытный врач","descriptionKk":"Тәжірибелі дәрігер","photoUrl":"media/doctors/a.jpg"}]`,
		"/api/reviews":  `[{"id":1,"patientName":"","rating":3,"posterUrl":"https://img.test/p.jpg"}]`,
		"/api/services": `[{"id":1,"slug":"check","titleRu":"Проверка","titleKk":"Тексеру","isActive":true},{"id":2,"slug":"old","titleRu":"Старая","titleKk":"Ескі","isActive":false}]`,
	})
	router := newTestRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=kk", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kk", rec.Header().Get("Content-Language"))
	body := rec.Body.String()

	assert.Contains(t, body, `<html lang="kk">`)
	assert.Contains(t, body, "Тәжірибелі дәрігер")
	assert.Contains(t, body, "12 жыл тәжірибе")
	assert.Contains(t, body, `src="http://cdn.test/media/doctors/a.jpg"`)
	assert.Contains(t, body, `poster="https://img.test/p.jpg"`)
	assert.Contains(t, body, "Бейнепікір №1")
	assert.Contains(t, body, "★★★<")
	assert.Contains(t, body, "Тексеру")
	assert.NotContains(t, body, "Ескі")
	assert.Contains(t, body, `src="/assets/placeholder.png"`)
}

func TestHandler_PageAcceptLanguage(t *testing.T) {
	router := newTestRouter(t, newFakeAPI(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "kk-KZ")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "kk", rec.Header().Get("Content-Language"))
	assert.Contains(t, rec.Body.String(), "Дәрігерлер жақында қосылады")
}

func TestHandler_PageBookingStatus(t *testing.T) {
	router := newTestRouter(t, newFakeAPI(t, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?booking=ok", nil))
	assert.Contains(t, rec.Body.String(), "Спасибо! Мы скоро перезвоним.")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?booking=maybe", nil))
	assert.NotContains(t, rec.Body.String(), "booking-status")
}

func TestHandler_Book(t *testing.T) {
	api := newFakeAPI(t, nil)
	router := newTestRouter(t, api)

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := post(url.Values{"name": {" Асель "}, "phone": {"+77010000000"}, "lang": {"kk"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?booking=ok&lang=kk#booking", rec.Header().Get("Location"))
	require.Len(t, api.Posted(), 1)
	assert.JSONEq(t, `{"name":"Асель","phone":"+77010000000"}`, api.Posted()[0])

	rec = post(url.Values{"name": {"Асель"}})
	assert.Equal(t, "/?booking=error&lang=ru#booking", rec.Header().Get("Location"))
	assert.Len(t, api.Posted(), 1)
}

func TestHandler_Assets(t *testing.T) {
	router := newTestRouter(t, newFakeAPI(t, nil))

	cases := map[string]string{
		"/assets/site.css":    "text/css",
		mediapath.Placeholder: "image/png",
	}
	for path, contentType := range cases {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), contentType), rec.Header().Get("Content-Type"))
			assert.NotZero(t, rec.Body.Len())
		})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ServiceDetails(t *testing.T) {
	api := newFakeAPI(t, map[string]string{
		"/api/services": `[{"id":1,"slug":"oct","titleRu":"ОКТ","titleKk":"ОКТ","shortDescriptionRu":"Кратко","fullDescriptionRu":"Полное описание обследования","fullDescriptionKk":"Толық сипаттама","isActive":true},{"id":2,"slug":"lens","titleRu":"Линзы","titleKk":"Линзалар","isActive":true}]`,
	})
	router := newTestRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=ru", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<summary>Подробнее</summary>")
	assert.Contains(t, body, "Полное описание обследования")
	assert.Equal(t, 1, strings.Count(body, "<details"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=kk", nil))
	assert.Contains(t, rec.Body.String(), "<summary>Толығырақ</summary>")
	assert.Contains(t, rec.Body.String(), "Толық сипаттама")
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★★", stars(0))
	assert.Equal(t, "★★", stars(2))
	assert.Equal(t, "★★★★★", stars(9))
}
