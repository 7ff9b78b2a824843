// Package search keeps a searchable copy of user summaries in Elasticsearch.
// The directory is never the source of truth; the user repository is.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
)

const (
	DefaultSize = 10
	MaxSize     = 50
)

// UserDoc is the indexed form of a user. It carries neither the password
// hash nor the email, so search cannot be used to enumerate accounts.
type UserDoc struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func docFromUser(u entity.User) UserDoc {
	return UserDoc{
		ID:        u.ID().String(),
		Username:  u.Username().Value(),
		CreatedAt: u.CreatedAt().UTC().Format(time.RFC3339Nano),
	}
}

type UserDirectory struct {
	es      *elasticsearch.Client
	index   string
	logger  *logrus.Logger
	timeout time.Duration
}

// NewUserDirectory returns a directory backed by es. A nil client or empty
// index yields a directory that indexes nothing and finds nothing.
func NewUserDirectory(es *elasticsearch.Client, index string, logger *logrus.Logger) *UserDirectory {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UserDirectory{es: es, index: index, logger: logger, timeout: 3 * time.Second}
}

func (d *UserDirectory) Enabled() bool { return d != nil && d.es != nil && d.index != "" }

func (d *UserDirectory) IndexUser(ctx context.Context, u entity.User) error {
	if !d.Enabled() {
		return nil
	}
	b, err := json.Marshal(docFromUser(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: d.index, DocumentID: u.ID().String(), Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	res, err := req.Do(c, d.es)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	d.logger.WithField("user_id", u.ID().String()).Debug("user indexed")
	return nil
}

// Search runs a match query over username. size is clamped to
// [1, MaxSize], with DefaultSize for non-positive values.
func (d *UserDirectory) Search(ctx context.Context, q string, size int) ([]UserDoc, error) {
	if !d.Enabled() || q == "" {
		return []UserDoc{}, nil
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"username": q,
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	res, err := d.es.Search(
		d.es.Search.WithContext(c),
		d.es.Search.WithIndex(d.index),
		d.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source UserDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("es search decode: %w", err)
	}
	out := make([]UserDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// Name and OnUserRegistered let the directory run as a registration hook.
func (d *UserDirectory) Name() string { return "search_index" }

func (d *UserDirectory) OnUserRegistered(ctx context.Context, u entity.User) error {
	return d.IndexUser(ctx, u)
}
