package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

type recorded struct {
	method string
	path   string
	body   string
}

func newESServer(t *testing.T, status int, reply string) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &reqs
}

func testUser(t *testing.T) entity.User {
	t.Helper()
	email, err := vo.NewEmail("a@b.com")
	require.NoError(t, err)
	username, err := vo.NewUsername("abc")
	require.NoError(t, err)
	hash, err := vo.NewPasswordHash("$2a$04$" + strings.Repeat("x", 53))
	require.NoError(t, err)
	u, err := entity.NewUser(vo.NewEntityID(), email, username, hash, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return u
}

func TestIndexUserSendsSummaryWithoutHash(t *testing.T) {
	es, reqs := newESServer(t, http.StatusCreated, `{"result":"created"}`)
	dir := NewUserDirectory(es, "users", nil)
	u := testUser(t)

	require.NoError(t, dir.OnUserRegistered(context.Background(), u))

	require.Len(t, *reqs, 1)
	req := (*reqs)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/users/_doc/"+u.ID().String(), req.path)

	var doc UserDoc
	require.NoError(t, json.Unmarshal([]byte(req.body), &doc))
	assert.Equal(t, UserDoc{ID: u.ID().String(), Username: "abc", CreatedAt: "2024-05-01T12:00:00Z"}, doc)
	assert.NotContains(t, req.body, "$2a$")
	assert.NotContains(t, req.body, "a@b.com")
}

func TestIndexUserReportsErrorStatus(t *testing.T) {
	es, _ := newESServer(t, http.StatusServiceUnavailable, `{"error":"unavailable"}`)
	dir := NewUserDirectory(es, "users", nil)

	err := dir.IndexUser(context.Background(), testUser(t))
	assert.Error(t, err)
}

func TestSearchDecodesHitsAndClampsSize(t *testing.T) {
	es, reqs := newESServer(t, http.StatusOK, `{"hits":{"hits":[
		{"_id":"1","_source":{"id":"1","email":"a@b.com","username":"abc","created_at":"2024-05-01T12:00:00Z"}},
		{"_id":"2","_source":{"id":"2","email":"c@d.com","username":"cde","created_at":"2024-05-02T12:00:00Z"}}
	]}}`)
	dir := NewUserDirectory(es, "users", nil)

	docs, err := dir.Search(context.Background(), "abc", 500)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "abc", docs[0].Username)
	assert.Equal(t, "cde", docs[1].Username)

	// documents indexed before emails were dropped must not leak them
	out, err := json.Marshal(docs)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "@")

	require.Len(t, *reqs, 1)
	assert.Equal(t, "/users/_search", (*reqs)[0].path)
	var body struct {
		Size  int `json:"size"`
		Query struct {
			Match map[string]string `json:"match"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal([]byte((*reqs)[0].body), &body))
	assert.Equal(t, MaxSize, body.Size)
	assert.Equal(t, map[string]string{"username": "abc"}, body.Query.Match)
	assert.NotContains(t, (*reqs)[0].body, "email")
}

func TestDisabledDirectory(t *testing.T) {
	dir := NewUserDirectory(nil, "users", nil)
	assert.False(t, dir.Enabled())

	assert.NoError(t, dir.IndexUser(context.Background(), testUser(t)))
	docs, err := dir.Search(context.Background(), "abc", 5)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
