package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/mediapath"
	"github.com/Vovarama1992/visus/internal/models"
)

// State of the console for the active kind.
type State int

const (
	StateBrowsing State = iota
	StateEditing
	StateCreating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateEditing:
		return "editing"
	case StateCreating:
		return "creating"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

// Status messages shown to the administrator.
const (
	MsgNoAuth         = "Нет авторизации"
	MsgLoggedIn       = "Вход выполнен"
	MsgCreated        = "Создано"
	MsgUpdated        = "Обновлено"
	MsgDeleted        = "Удалено"
	MsgUploaded       = "Файл загружен"
	MsgFileDeleted    = "Файл удалён"
	MsgNoFile         = "Нет файла для удаления"
	MsgNoTarget       = "Укажите ID записи для удаления"
	MsgNeedFileOrAuth = "Выберите файл и залогиньтесь"
)

// logical operations with their own sequence counter
const (
	opList         = "list"
	opSubmit       = "submit"
	opDeleteRecord = "deleteRecord"
	opUpload       = "upload"
	opDeleteFile   = "deleteFile"
)

var allOps = []string{opList, opSubmit, opDeleteRecord, opUpload, opDeleteFile}

// View is a snapshot of the controller for rendering.
type View struct {
	Kind       Kind
	State      State
	Editing    bool
	Form       map[Field]string
	Records    []Record
	Status     string
	PreviewURL string
	Username   string
}

// Controller keeps the entity form, the per-kind record lists and the
// backend in sync. It is safe for concurrent use: state is guarded by a
// mutex, network calls run outside of it, and a response that was
// overtaken by a newer request of the same operation is dropped.
type Controller struct {
	client  *Client
	session *Session
	preview *mediapath.Resolver
	log     *logger.ZapLogger

	mu        sync.Mutex
	kind      Kind
	form      *Form
	records   map[Kind][]Record
	state     State
	status    string
	uploadURL string
	seq       map[string]uint64
}

func NewController(client *Client, session *Session, preview *mediapath.Resolver, log *logger.ZapLogger) *Controller {
	return &Controller{
		client:  client,
		session: session,
		preview: preview,
		log:     log,
		kind:    KindDoctor,
		form:    NewForm(),
		records: make(map[Kind][]Record),
		seq:     make(map[string]uint64),
	}
}

// ---------- state helpers (mu held) ----------

func (c *Controller) next(op string) uint64 {
	c.seq[op]++
	return c.seq[op]
}

// invalidate drops every in-flight response.
func (c *Controller) invalidate() {
	for _, op := range allOps {
		c.next(op)
	}
}

func (c *Controller) stale(op string, seq uint64) bool {
	if c.seq[op] == seq {
		return false
	}
	c.log.Log(logger.LogEntry{
		Level:   "debug",
		Message: "stale response dropped",
		Fields:  map[string]any{"op": op, "seq": seq, "latest": c.seq[op]},
	})
	return true
}

func (c *Controller) reset() {
	c.form.Clear()
	c.uploadURL = ""
	c.state = StateBrowsing
}

func (c *Controller) authHeader() (string, error) {
	h, ok := c.session.Header()
	if !ok {
		c.status = MsgNoAuth
		return "", ErrUnauthorized
	}
	return h, nil
}

func describe(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

// objectNameFor derives the storage key of a stored path. Paths that stay
// absolute after extraction point outside our storage and have no key.
func objectNameFor(path string) string {
	name := mediapath.ObjectName(path)
	if name == "" || mediapath.IsAbsolute(name) {
		return ""
	}
	return name
}

// ---------- read side ----------

func (c *Controller) Kind() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Form returns a copy of the current form.
func (c *Controller) Form() *Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Clone()
}

func (c *Controller) Records(kind Kind) []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Record(nil), c.records[kind]...)
}

// PreviewURL is the image to show for the form: the resolved canonical
// path, or the raw URL of the last upload.
func (c *Controller) PreviewURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previewURL()
}

func (c *Controller) previewURL() string {
	if p, _ := CanonicalPath(c.kind, c.form); p != "" {
		if u := c.preview.Resolve(p); u != "" {
			return u
		}
	}
	return c.uploadURL
}

// ResolvePreview resolves a stored path the way previews do.
func (c *Controller) ResolvePreview(path string) string {
	return c.preview.Resolve(path)
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Kind:       c.kind,
		State:      c.state,
		Editing:    c.form.Editing(),
		Form:       c.form.Values(),
		Records:    append([]Record(nil), c.records[c.kind]...),
		Status:     c.status,
		PreviewURL: c.previewURL(),
		Username:   c.session.Username(),
	}
}

// ---------- local edits ----------

// SwitchKind selects kind and clears the form. Unsaved edits are discarded
// and in-flight responses for the previous kind are ignored.
func (c *Controller) SwitchKind(kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kind = kind
	c.reset()
	c.invalidate()
}

// NewRecord clears the form for a fresh create.
func (c *Controller) NewRecord() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	c.state = StateCreating
}

func (c *Controller) SetField(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.form.Set(field, value); err != nil {
		c.status = "Ошибка: " + err.Error()
		return err
	}
	if c.state == StateBrowsing && !c.form.Editing() {
		c.state = StateCreating
	}
	return nil
}

// Select loads record id of the active kind into the form.
func (c *Controller) Select(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.records[c.kind] {
		if rec.ID() != id {
			continue
		}
		if err := c.form.Populate(c.kind, rec); err != nil {
			return err
		}
		c.uploadURL = ""
		c.state = StateEditing
		c.status = ""
		return nil
	}
	c.status = "Запись " + strconv.Itoa(id) + " не найдена"
	return fmt.Errorf("%w: %s %d", ErrNotFound, c.kind, id)
}

// ---------- session ----------

// Login verifies the credentials against the API and persists them.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		err := fmt.Errorf("%w: username and password are required", ErrValidation)
		c.mu.Lock()
		c.status = "Ошибка: " + err.Error()
		c.mu.Unlock()
		return err
	}

	user, err := c.client.Whoami(ctx, BasicHeader(username, password))
	if err == nil {
		err = c.session.Login(username, password)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = "Ошибка: " + describe(err)
		return err
	}
	c.status = MsgLoggedIn + ": " + user
	return nil
}

func (c *Controller) Logout() error {
	err := c.session.Logout()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	c.records = make(map[Kind][]Record)
	c.status = ""
	c.invalidate()
	return err
}

// ---------- remote operations ----------

// List refreshes the records of the active kind. On failure the cached list
// is kept.
func (c *Controller) List(ctx context.Context) error {
	c.mu.Lock()
	auth, err := c.authHeader()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	kind := c.kind
	seq := c.next(opList)
	c.mu.Unlock()

	recs, err := c.client.List(ctx, auth, kind)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(opList, seq) {
		return nil
	}
	if err != nil {
		c.status = "Не удалось загрузить список: " + describe(err)
		return err
	}
	c.records[kind] = recs
	return nil
}

// Submit creates a record, or updates targetId when in edit mode.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	auth, err := c.authHeader()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	kind := c.kind
	payload, err := BuildPayload(kind, c.form)
	if err != nil {
		c.status = "Ошибка: " + err.Error()
		c.mu.Unlock()
		return err
	}
	id := strings.TrimSpace(c.form.TargetID())
	isUpdate := c.form.Editing() && id != ""
	prev := c.state
	c.state = StateSubmitting
	seq := c.next(opSubmit)
	c.mu.Unlock()

	if isUpdate {
		err = c.client.Update(ctx, auth, id, payload)
	} else {
		err = c.client.Create(ctx, auth, payload)
	}

	c.mu.Lock()
	if c.stale(opSubmit, seq) {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.state = prev
		c.status = "Ошибка: " + describe(err)
		c.mu.Unlock()
		return err
	}
	if isUpdate {
		c.status = MsgUpdated
		c.state = StateEditing
	} else {
		c.status = MsgCreated
		c.reset()
	}
	c.mu.Unlock()

	c.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "record saved",
		Fields:  map[string]any{"kind": string(kind), "update": isUpdate, "id": id},
	})
	c.refresh(ctx)
	return nil
}

// DeleteRecord deletes targetId. A record that is already gone counts as
// deleted.
func (c *Controller) DeleteRecord(ctx context.Context) error {
	c.mu.Lock()
	auth, err := c.authHeader()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	id := strings.TrimSpace(c.form.TargetID())
	if id == "" {
		c.status = MsgNoTarget
		c.mu.Unlock()
		return fmt.Errorf("%w: targetId is empty", ErrValidation)
	}
	kind := c.kind
	seq := c.next(opDeleteRecord)
	c.mu.Unlock()

	err = c.client.Delete(ctx, auth, kind, id)
	if errors.Is(err, ErrNotFound) {
		err = nil
	}

	c.mu.Lock()
	if c.stale(opDeleteRecord, seq) {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.status = "Ошибка удаления: " + describe(err)
		c.mu.Unlock()
		return err
	}
	c.status = MsgDeleted
	c.reset()
	c.mu.Unlock()

	c.refresh(ctx)
	return nil
}

// Upload sends a file into the folder of the active kind. When the form
// already holds a media path, its object name is sent along so the backend
// overwrites that object instead of creating a new one.
func (c *Controller) Upload(ctx context.Context, filename string, body io.Reader) error {
	c.mu.Lock()
	auth, ok := c.session.Header()
	if !ok || body == nil || strings.TrimSpace(filename) == "" {
		c.status = MsgNeedFileOrAuth
		c.mu.Unlock()
		if !ok {
			return ErrUnauthorized
		}
		return fmt.Errorf("%w: no file selected", ErrValidation)
	}
	kind := c.kind
	existing, _ := CanonicalPath(kind, c.form)
	req := UploadRequest{
		Folder:     kind.Folder(),
		ObjectName: objectNameFor(existing),
		Filename:   filename,
		Body:       body,
	}
	seq := c.next(opUpload)
	c.mu.Unlock()

	res, err := c.client.Upload(ctx, auth, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(opUpload, seq) {
		return nil
	}
	if err != nil {
		c.status = "Ошибка: " + describe(err)
		return err
	}

	stored := res.Path
	if stored == "" {
		stored = res.URL
	}
	_ = c.form.Set(PrimaryField(kind), stored)
	c.uploadURL = res.URL
	if c.state == StateBrowsing {
		c.state = StateCreating
	}
	c.status = MsgUploaded
	return nil
}

// DeleteFile removes the stored object behind the canonical media path and
// clears the field it came from.
func (c *Controller) DeleteFile(ctx context.Context) error {
	c.mu.Lock()
	auth, err := c.authHeader()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	path, field := CanonicalPath(c.kind, c.form)
	name := objectNameFor(path)
	if name == "" {
		c.status = MsgNoFile
		c.mu.Unlock()
		return fmt.Errorf("%w: nothing to delete", ErrValidation)
	}
	seq := c.next(opDeleteFile)
	c.mu.Unlock()

	err = c.client.DeleteObject(ctx, auth, name)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(opDeleteFile, seq) {
		return nil
	}
	if err != nil {
		c.status = "Ошибка удаления: " + describe(err)
		return err
	}
	_ = c.form.Set(field, "")
	c.uploadURL = ""
	c.status = MsgFileDeleted
	return nil
}

// refresh reloads the list after a mutation. A failure only shows up in the
// status message.
func (c *Controller) refresh(ctx context.Context) {
	if err := c.List(ctx); err != nil {
		c.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "list refresh failed",
			Error:   err,
		})
	}
}

// Requests lists the latest booking requests.
func (c *Controller) Requests(ctx context.Context, limit int) ([]models.CallbackRequest, error) {
	c.mu.Lock()
	auth, err := c.authHeader()
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	list, err := c.client.Callbacks(ctx, auth, limit)
	if err != nil {
		c.mu.Lock()
		c.status = "Не удалось загрузить заявки: " + describe(err)
		c.mu.Unlock()
		return nil, err
	}
	return list, nil
}

// Watch streams new booking requests to fn until ctx is done.
func (c *Controller) Watch(ctx context.Context, fn func(models.CallbackRequest)) error {
	c.mu.Lock()
	auth, err := c.authHeader()
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.client.WatchCallbacks(ctx, auth, fn)
}
