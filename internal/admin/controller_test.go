package admin

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/visus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doctorList(w http.ResponseWriter, r *http.Request) {
	respondJSON(http.StatusOK, []models.Doctor{{
		ID:              7,
		Name:            "A",
		Role:            "R",
		ExperienceYears: 3,
		PhotoURL:        "doctors/a.jpg",
	}})(w, r)
}

func TestController_ListWithoutAuth(t *testing.T) {
	b := newBackend(t)
	c := newTestController(t, b, false)

	err := c.List(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, MsgNoAuth, c.Status())
	assert.Empty(t, b.Calls())
}

func TestController_ListFailureKeepsCache(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodGet, "/api/admin/doctors", doctorList)
	c := newTestController(t, b, true)
	ctx := context.Background()

	require.NoError(t, c.List(ctx))
	require.Len(t, c.Records(KindDoctor), 1)

	b.on(http.MethodGet, "/api/admin/doctors", respondJSON(http.StatusInternalServerError, map[string]string{"detail": "db down"}))
	err := c.List(ctx)
	assert.ErrorIs(t, err, ErrServer)
	assert.Len(t, c.Records(KindDoctor), 1)
	assert.Contains(t, c.Status(), "db down")
}

func TestController_CreateClearsForm(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodPost, "/api/admin/doctors", respondJSON(http.StatusCreated, map[string]any{"id": 1}))
	b.on(http.MethodGet, "/api/admin/doctors", doctorList)
	c := newTestController(t, b, true)
	ctx := context.Background()

	require.NoError(t, c.SetField(FieldName, "Иванов"))
	require.NoError(t, c.SetField(FieldRole, "Офтальмолог"))
	assert.Equal(t, StateCreating, c.State())

	require.NoError(t, c.Submit(ctx))

	assert.Equal(t, MsgCreated, c.Status())
	assert.Equal(t, StateBrowsing, c.State())
	assert.Empty(t, c.Form().Get(FieldName))
	assert.Equal(t, "5", c.Form().Get(FieldRating))
	assert.Len(t, c.Records(KindDoctor), 1)

	calls := b.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.JSONEq(t, `{"name":"Иванов","role":"Офтальмолог","experienceYears":0,"descriptionRu":"","descriptionKk":"","photoUrl":""}`, string(calls[0].Body))
	assert.Equal(t, http.MethodGet, calls[1].Method)
}

func TestController_UpdateKeepsForm(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodGet, "/api/admin/doctors", doctorList)
	b.on(http.MethodPut, "/api/admin/doctors/7", respondJSON(http.StatusOK, map[string]any{"id": 7}))
	c := newTestController(t, b, true)
	ctx := context.Background()

	require.NoError(t, c.List(ctx))
	require.NoError(t, c.Select(7))
	assert.Equal(t, StateEditing, c.State())
	require.NoError(t, c.SetField(FieldRole, "Хирург"))

	require.NoError(t, c.Submit(ctx))

	assert.Equal(t, MsgUpdated, c.Status())
	assert.Equal(t, StateEditing, c.State())
	assert.Equal(t, "7", c.Form().TargetID())
	assert.Equal(t, "Хирург", c.Form().Get(FieldRole))

	put := b.Calls()[1]
	assert.Equal(t, "/api/admin/doctors/7", put.Path)
	assert.JSONEq(t, `{"name":"A","role":"Хирург","experienceYears":3,"descriptionRu":"","descriptionKk":"","photoUrl":"doctors/a.jpg"}`, string(put.Body))
}

func TestController_SubmitFailureChangesNothing(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodPost, "/api/admin/reviews", respondJSON(http.StatusBadRequest, map[string]string{"detail": "rating must be between 1 and 5"}))
	c := newTestController(t, b, true)
	c.SwitchKind(KindReview)

	require.NoError(t, c.SetField(FieldPatientName, "Пациент"))
	require.NoError(t, c.SetField(FieldRating, "9"))

	err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StateCreating, c.State())
	assert.Equal(t, "Пациент", c.Form().Get(FieldPatientName))
	assert.Equal(t, "Ошибка: HTTP 400: rating must be between 1 and 5", c.Status())
	assert.Len(t, b.Calls(), 1)
}

func TestController_DeleteRecordWithoutTarget(t *testing.T) {
	b := newBackend(t)
	c := newTestController(t, b, true)

	err := c.DeleteRecord(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, MsgNoTarget, c.Status())
	assert.Empty(t, b.Calls())
}

func TestController_DeleteRecordGoneCountsAsDeleted(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodGet, "/api/admin/doctors", doctorList)
	b.on(http.MethodDelete, "/api/admin/doctors/7", respondJSON(http.StatusNotFound, map[string]string{"detail": "Doctor not found"}))
	c := newTestController(t, b, true)
	ctx := context.Background()

	require.NoError(t, c.List(ctx))
	require.NoError(t, c.Select(7))

	require.NoError(t, c.DeleteRecord(ctx))
	assert.Equal(t, MsgDeleted, c.Status())
	assert.Empty(t, c.Form().TargetID())
	assert.Equal(t, StateBrowsing, c.State())
}

func TestController_UploadReplacesExistingObject(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodGet, "/api/admin/doctors", doctorList)
	b.on(http.MethodPost, "/api/admin/upload", respondJSON(http.StatusOK, models.UploadResult{
		URL:  "http://localhost:8080/media/doctors/a.jpg",
		Path: "doctors/a.jpg",
	}))
	c := newTestController(t, b, true)
	ctx := context.Background()

	require.NoError(t, c.List(ctx))
	require.NoError(t, c.Select(7))
	require.NoError(t, c.Upload(ctx, "new.jpg", strings.NewReader("img")))

	up := b.Calls()[1]
	assert.Equal(t, map[string]string{"folder": "doctors", "objectName": "doctors/a.jpg"}, up.Fields)
	assert.Equal(t, "new.jpg", up.File)
	assert.Equal(t, "doctors/a.jpg", c.Form().Get(FieldPhotoURL))
	assert.Equal(t, MsgUploaded, c.Status())
	assert.Equal(t, testMediaBase+"/doctors/a.jpg", c.PreviewURL())
}

func TestController_UploadMediaUsesCategoryFolder(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodPost, "/api/admin/upload", respondJSON(http.StatusOK, models.UploadResult{
		URL:  "http://localhost:8080/media/interior/abc_hall.jpg",
		Path: "interior/abc_hall.jpg",
	}))
	c := newTestController(t, b, true)
	c.SwitchKind(KindMediaInterior)

	require.NoError(t, c.Upload(context.Background(), "hall.jpg", strings.NewReader("img")))

	assert.Equal(t, map[string]string{"folder": "interior"}, b.Calls()[0].Fields)
	assert.Equal(t, "interior/abc_hall.jpg", c.Form().Get(FieldMediaURL))
	assert.Equal(t, StateCreating, c.State())
}

func TestController_UploadWithoutFile(t *testing.T) {
	b := newBackend(t)
	c := newTestController(t, b, true)

	err := c.Upload(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, MsgNeedFileOrAuth, c.Status())
	assert.Empty(t, b.Calls())
}

func TestController_DeleteFile(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodGet, "/api/admin/doctors", doctorList)
	b.on(http.MethodDelete, "/api/admin/upload", respondJSON(http.StatusOK, map[string]string{"status": "deleted"}))
	c := newTestController(t, b, true)
	ctx := context.Background()

	require.NoError(t, c.List(ctx))
	require.NoError(t, c.Select(7))
	require.NoError(t, c.DeleteFile(ctx))

	del := b.Calls()[1]
	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "/api/admin/upload", del.Path)
	assert.Equal(t, "objectName=doctors%2Fa.jpg", del.RawQuery)
	assert.Empty(t, c.Form().Get(FieldPhotoURL))
	assert.Equal(t, MsgFileDeleted, c.Status())
	assert.Empty(t, c.PreviewURL())
}

func TestController_DeleteFileNothingToDelete(t *testing.T) {
	cases := map[string]string{
		"empty":    "",
		"external": "https://cdn.example.com/x.jpg",
	}
	for name, photo := range cases {
		t.Run(name, func(t *testing.T) {
			b := newBackend(t)
			c := newTestController(t, b, true)
			require.NoError(t, c.SetField(FieldPhotoURL, photo))

			err := c.DeleteFile(context.Background())
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, MsgNoFile, c.Status())
			assert.Empty(t, b.Calls())
		})
	}
}

func TestController_StaleListDropped(t *testing.T) {
	b := newBackend(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	b.on(http.MethodGet, "/api/admin/doctors", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		doctorList(w, r)
	})
	c := newTestController(t, b, true)

	done := make(chan error, 1)
	go func() { done <- c.List(context.Background()) }()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("list request never reached the backend")
	}
	c.SwitchKind(KindReview)
	close(release)

	require.NoError(t, <-done)
	assert.Empty(t, c.Records(KindDoctor))
	assert.Equal(t, KindReview, c.Kind())
}

func TestController_Login(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodGet, "/api/admin/session", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != BasicHeader("admin", "secret") {
			respondJSON(http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})(w, r)
			return
		}
		respondJSON(http.StatusOK, map[string]string{"username": "admin"})(w, r)
	})
	c := newTestController(t, b, false)
	ctx := context.Background()

	err := c.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, c.session.Authenticated())
	assert.Equal(t, "Ошибка: HTTP 401: Invalid credentials", c.Status())

	require.NoError(t, c.Login(ctx, "admin", "secret"))
	assert.True(t, c.session.Authenticated())
	assert.Equal(t, MsgLoggedIn+": admin", c.Status())

	require.NoError(t, c.Logout())
	assert.False(t, c.session.Authenticated())
}

func TestController_LoginValidatesBeforeRequest(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodGet, "/api/admin/session", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(http.StatusOK, map[string]string{"username": "admin"})(w, r)
	})
	c := newTestController(t, b, false)
	ctx := context.Background()

	assert.ErrorIs(t, c.Login(ctx, "   ", "secret"), ErrValidation)
	assert.ErrorIs(t, c.Login(ctx, "admin", ""), ErrValidation)
	assert.Empty(t, b.Calls())
	assert.False(t, c.session.Authenticated())
	assert.Contains(t, c.Status(), "Ошибка")

	require.NoError(t, c.Login(ctx, "  admin ", "secret"))
	calls := b.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, BasicHeader("admin", "secret"), calls[0].Auth)
	assert.Equal(t, "admin", c.Snapshot().Username)
}

func TestController_UploadDuringCreateKeepsCreateResult(t *testing.T) {
	b := newBackend(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	b.on(http.MethodPost, "/api/admin/doctors", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		respondJSON(http.StatusCreated, map[string]any{"id": 8})(w, r)
	})
	b.on(http.MethodGet, "/api/admin/doctors", doctorList)
	b.on(http.MethodPost, "/api/admin/upload", respondJSON(http.StatusOK, models.UploadResult{
		URL:  testMediaBase + "/doctors/new.jpg",
		Path: "doctors/new.jpg",
	}))
	c := newTestController(t, b, true)
	ctx := context.Background()

	require.NoError(t, c.SetField(FieldName, "Иванов"))
	require.NoError(t, c.SetField(FieldRole, "Офтальмолог"))

	done := make(chan error, 1)
	go func() { done <- c.Submit(ctx) }()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("create request never reached the backend")
	}
	require.NoError(t, c.Upload(ctx, "new.jpg", strings.NewReader("img")))
	close(release)

	require.NoError(t, <-done)
	assert.Equal(t, MsgCreated, c.Status())
	assert.Equal(t, "", c.Form().Get(FieldName))
	assert.False(t, c.Form().Editing())
	assert.Len(t, c.Records(KindDoctor), 1)

	posts := 0
	for _, call := range b.Calls() {
		if call.Method == http.MethodPost && call.Path == "/api/admin/doctors" {
			posts++
		}
	}
	assert.Equal(t, 1, posts)
}

func TestController_SelectUnknown(t *testing.T) {
	c := newTestController(t, newBackend(t), true)
	assert.ErrorIs(t, c.Select(42), ErrNotFound)
}
