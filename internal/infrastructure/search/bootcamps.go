// Package search maintains the optional Elasticsearch index behind the
// bootcamp free-text search endpoint. Indexing is best-effort: the database
// stays the source of truth and index failures never fail a request.
package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/campdir/campdir-api/internal/domain/entity"
)

type BootcampIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewBootcampIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *BootcampIndex {
	return &BootcampIndex{ES: es, Index: index, Logger: logger}
}

func (i *BootcampIndex) enabled() bool { return i != nil && i.ES != nil && i.Index != "" }

// Upsert indexes or reindexes one bootcamp document.
func (i *BootcampIndex) Upsert(ctx context.Context, b *entity.Bootcamp) {
	if !i.enabled() {
		return
	}
	doc := map[string]any{
		"id":          b.ID,
		"name":        b.Name,
		"description": b.Description,
		"address":     b.Address,
		"careers":     b.Careers,
		"created_at":  b.CreatedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: i.Index, DocumentID: b.ID, Body: strings.NewReader(string(body))}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		i.warn(err, b.ID, "index bootcamp failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		i.warn(nil, b.ID, "index bootcamp response error: "+res.Status())
	}
}

// Remove drops a bootcamp document from the index.
func (i *BootcampIndex) Remove(ctx context.Context, id string) {
	if !i.enabled() {
		return
	}
	req := esapi.DeleteRequest{Index: i.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		i.warn(err, id, "delete bootcamp from index failed")
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match over name, description, and careers.
func (i *BootcampIndex) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if !i.enabled() {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "careers"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := i.ES.Search(
		i.ES.Search.WithContext(c),
		i.ES.Search.WithIndex(i.Index),
		i.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (i *BootcampIndex) warn(err error, id, msg string) {
	if i.Logger == nil {
		return
	}
	entry := i.Logger.WithField("bootcamp_id", id)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn(msg)
}

// NewESClient creates an Elasticsearch client with optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
	})
}
