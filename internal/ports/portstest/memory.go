// Package portstest provides in-memory implementations of the repository
// and storage ports for tests.
package portstest

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"github.com/Vovarama1992/visus/internal/models"
	"github.com/Vovarama1992/visus/internal/ports"
)

var (
	_ ports.DoctorRepository   = (*Repo)(nil)
	_ ports.ReviewRepository   = (*Repo)(nil)
	_ ports.ServiceRepository  = (*Repo)(nil)
	_ ports.MediaRepository    = (*Repo)(nil)
	_ ports.CallbackRepository = (*Repo)(nil)
	_ ports.ObjectStorage      = (*Objects)(nil)
)

// Repo implements every repository port. Records are kept in maps and
// listed in id order.
type Repo struct {
	mu      sync.Mutex
	nextID  int
	doctors map[int]models.Doctor
	reviews map[int]models.Review
	svcs    map[int]models.ServiceItem
	media   map[int]models.MediaAsset
	calls   []models.CallbackRequest
}

func NewRepo() *Repo {
	return &Repo{
		doctors: map[int]models.Doctor{},
		reviews: map[int]models.Review{},
		svcs:    map[int]models.ServiceItem{},
		media:   map[int]models.MediaAsset{},
	}
}

func (m *Repo) id() int { m.nextID++; return m.nextID }

func sortedKeys[V any](in map[int]V) []int {
	keys := make([]int, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// doctors

func (m *Repo) ListDoctors(context.Context) ([]models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Doctor{}
	for _, k := range sortedKeys(m.doctors) {
		out = append(out, m.doctors[k])
	}
	return out, nil
}

func (m *Repo) GetDoctor(_ context.Context, id int) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *Repo) InsertDoctor(_ context.Context, d *models.Doctor) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *d
	c.ID = m.id()
	m.doctors[c.ID] = c
	return &c, nil
}

func (m *Repo) UpdateDoctor(_ context.Context, d *models.Doctor) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[d.ID]; !ok {
		return nil, nil
	}
	m.doctors[d.ID] = *d
	c := *d
	return &c, nil
}

func (m *Repo) DeleteDoctor(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.doctors, id)
	return nil
}

func (m *Repo) CountDoctors(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.doctors), nil
}

// reviews

func (m *Repo) ListReviews(context.Context) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for _, k := range sortedKeys(m.reviews) {
		out = append(out, m.reviews[k])
	}
	return out, nil
}

func (m *Repo) GetReview(_ context.Context, id int) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Repo) InsertReview(_ context.Context, r *models.Review) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *r
	c.ID = m.id()
	m.reviews[c.ID] = c
	return &c, nil
}

func (m *Repo) UpdateReview(_ context.Context, r *models.Review) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[r.ID]; !ok {
		return nil, nil
	}
	m.reviews[r.ID] = *r
	c := *r
	return &c, nil
}

func (m *Repo) DeleteReview(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reviews, id)
	return nil
}

func (m *Repo) CountReviews(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reviews), nil
}

// services

func (m *Repo) ListServices(_ context.Context, onlyActive bool) ([]models.ServiceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ServiceItem{}
	for _, k := range sortedKeys(m.svcs) {
		if onlyActive && !m.svcs[k].IsActive {
			continue
		}
		out = append(out, m.svcs[k])
	}
	return out, nil
}

func (m *Repo) GetService(_ context.Context, id int) (*models.ServiceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.svcs[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (m *Repo) InsertService(_ context.Context, it *models.ServiceItem) (*models.ServiceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *it
	c.ID = m.id()
	m.svcs[c.ID] = c
	return &c, nil
}

func (m *Repo) UpdateService(_ context.Context, it *models.ServiceItem) (*models.ServiceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.svcs[it.ID]; !ok {
		return nil, nil
	}
	m.svcs[it.ID] = *it
	c := *it
	return &c, nil
}

func (m *Repo) DeleteService(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.svcs, id)
	return nil
}

func (m *Repo) CountServices(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.svcs), nil
}

// media

func (m *Repo) ListMedia(_ context.Context, category string) ([]models.MediaAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.MediaAsset{}
	for _, k := range sortedKeys(m.media) {
		if m.media[k].Category == category {
			out = append(out, m.media[k])
		}
	}
	return out, nil
}

func (m *Repo) GetMedia(_ context.Context, id int) (*models.MediaAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.media[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *Repo) InsertMedia(_ context.Context, a *models.MediaAsset) (*models.MediaAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *a
	c.ID = m.id()
	m.media[c.ID] = c
	return &c, nil
}

func (m *Repo) UpdateMedia(_ context.Context, a *models.MediaAsset) (*models.MediaAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.media[a.ID]
	if !ok || old.Category != a.Category {
		return nil, nil
	}
	m.media[a.ID] = *a
	c := *a
	return &c, nil
}

func (m *Repo) DeleteMedia(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.media, id)
	return nil
}

func (m *Repo) CountMedia(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.media), nil
}

// callbacks

func (m *Repo) InsertCallback(_ context.Context, c *models.CallbackRequest) (*models.CallbackRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	cp.ID = m.id()
	m.calls = append(m.calls, cp)
	return &cp, nil
}

func (m *Repo) ListCallbacks(_ context.Context, limit int) ([]models.CallbackRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CallbackRequest{}
	for i := len(m.calls) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.calls[i])
	}
	return out, nil
}

// Objects is an ObjectStorage kept in memory. Deleted keys are recorded in
// order; FailDelete makes every Delete fail.
type Objects struct {
	mu         sync.Mutex
	objects    map[string][]byte
	deleted    []string
	FailDelete error
}

func NewObjects() *Objects {
	return &Objects{objects: map[string][]byte{}}
}

func (o *Objects) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.objects[key] = buf.Bytes()
	return nil
}

func (o *Objects) Delete(_ context.Context, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.FailDelete != nil {
		return o.FailDelete
	}
	o.deleted = append(o.deleted, key)
	delete(o.objects, key)
	return nil
}

func (o *Objects) PublicURL(key string) string {
	return "http://localhost:8080/media/" + key
}

// Get returns the stored bytes of key.
func (o *Objects) Get(key string) ([]byte, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	b, ok := o.objects[key]
	return b, ok
}

func (o *Objects) Deleted() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.deleted...)
}
