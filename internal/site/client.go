// Package site renders the public pages of the clinic from the read-only
// content API.
package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/mediapath"
	"github.com/Vovarama1992/visus/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrBooking is returned when the API refuses a callback request.
var ErrBooking = errors.New("booking rejected")

// Content is everything the public page shows from the API.
type Content struct {
	Doctors     []models.Doctor
	Reviews     []models.Review
	Services    []models.ServiceItem
	Diagnostics []models.MediaAsset
	Interior    []models.MediaAsset
}

// FallbackReviews are shown while the API has no reviews or is down.
var FallbackReviews = []models.Review{
	{ID: 1, PatientName: "Видеоотзыв №1", Rating: models.DefaultRating},
	{ID: 2, PatientName: "Видеоотзыв №2", Rating: models.DefaultRating},
	{ID: 3, PatientName: "Видеоотзыв №3", Rating: models.DefaultRating},
}

func placeholderMedia(category string) []models.MediaAsset {
	return []models.MediaAsset{{ID: -1, Category: category, PhotoURL: mediapath.Placeholder}}
}

// Client reads the public endpoints of the content API.
type Client struct {
	apiURL     string
	httpClient *http.Client
	log        *logger.ZapLogger
}

func NewClient(apiURL string, timeout time.Duration, log *logger.ZapLogger) *Client {
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{apiURL: strings.TrimRight(apiURL, "/"), httpClient: hc, log: log}
}

// Load fetches every section concurrently. A failed section degrades to
// its fallback and never fails the page.
func (c *Client) Load(ctx context.Context) Content {
	var (
		out Content
		g   errgroup.Group
	)

	g.Go(func() error {
		if err := c.get(ctx, "/doctors", &out.Doctors); err != nil {
			c.warn("doctors", err)
			out.Doctors = nil
		}
		return nil
	})
	g.Go(func() error {
		if err := c.get(ctx, "/reviews", &out.Reviews); err != nil {
			c.warn("reviews", err)
			out.Reviews = nil
		}
		if len(out.Reviews) == 0 {
			out.Reviews = append([]models.Review(nil), FallbackReviews...)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.get(ctx, "/services", &out.Services); err != nil {
			c.warn("services", err)
			out.Services = nil
		}
		return nil
	})
	g.Go(func() error {
		out.Diagnostics = c.media(ctx, models.CategoryDiagnostics)
		return nil
	})
	g.Go(func() error {
		out.Interior = c.media(ctx, models.CategoryInterior)
		return nil
	})

	_ = g.Wait()
	return out
}

func (c *Client) media(ctx context.Context, category string) []models.MediaAsset {
	var list []models.MediaAsset
	if err := c.get(ctx, "/media/"+category, &list); err != nil {
		c.warn("media/"+category, err)
		return placeholderMedia(category)
	}
	if len(list) == 0 {
		return placeholderMedia(category)
	}
	for i := range list {
		if list[i].Category == "" {
			list[i].Category = category
		}
	}
	return list
}

// Book forwards a callback request to the API.
func (c *Client) Book(ctx context.Context, name, phone string) error {
	body, err := json.Marshal(map[string]string{"name": name, "phone": phone})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/requests/callback", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post callback: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d", ErrBooking, resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: HTTP %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) warn(section string, err error) {
	c.log.Log(logger.LogEntry{
		Level:   "warn",
		Message: "section fallback",
		Error:   err,
		Fields:  map[string]any{"section": section},
	})
}
