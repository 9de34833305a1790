package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masmgr/gecko-go/config"
	"github.com/masmgr/gecko-go/internal/gittest"
	"github.com/masmgr/gecko-go/internal/output"
)

type fixture struct {
	server *Server
	hook   *logtest.Hook
	name   string
	repo   *gittest.Repo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	r := gittest.New(t)
	r.Write("README.md", "# Demo\n")
	r.Write("src/main.go", "package main\n\nfunc main() {}\n")
	r.WriteBytes("logo.png", []byte{0x89, 'P', 'N', 'G', 0x00, 0x01})
	r.Commit("init")
	r.Write("src/main.go", "package main\n\nfunc main() { println(1) }\n")
	r.Commit("print")

	cfg := config.DefaultConfig()
	cfg.Server.ReposRoot = filepath.Dir(r.Dir)
	cfg.Server.Workers = 2

	logger, hook := logtest.NewNullLogger()
	s := NewServer(cfg, logger)
	s.now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }

	return &fixture{server: s, hook: hook, name: filepath.Base(r.Dir), repo: r}
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestIndex(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/"+f.name)
	require.Equal(t, http.StatusOK, rec.Code)

	listing := decode[output.JSONListing](t, rec)
	assert.Equal(t, "print", listing.Commit.Summary)
	require.Len(t, listing.Entries, 3)
	assert.Equal(t, "src", listing.Entries[0].Name)
	assert.Equal(t, "tree", listing.Entries[0].Kind)
	require.NotNil(t, listing.Readme)
	assert.Contains(t, listing.Readme.HTML, "<h1")
}

func TestTree_NestedAndFile(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/"+f.name+"/tree/master/src")
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decode[output.JSONListing](t, rec)
	assert.Equal(t, "src", listing.Path)
	require.Len(t, listing.Entries, 1)
	assert.Equal(t, "main.go", listing.Entries[0].Name)

	rec = f.get(t, "/"+f.name+"/tree/master/src/main.go")
	require.Equal(t, http.StatusOK, rec.Code)
	b := decode[output.JSONBlob](t, rec)
	assert.Equal(t, "text", b.Kind)
	assert.Equal(t, "Go", b.Language)
	require.Len(t, b.Lines, 3)
	assert.Equal(t, "L3", b.Lines[2].Anchor)
	require.Len(t, b.Breadcrumb, 2)
	assert.Equal(t, "src", b.Breadcrumb[0].Link)
}

func TestBlob_BinaryStubAndRaw(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/"+f.name+"/blob/master/logo.png")
	require.Equal(t, http.StatusOK, rec.Code)
	stub := decode[output.JSONBlob](t, rec)
	assert.Equal(t, "binary", stub.Kind)
	assert.Equal(t, "?raw=true", stub.RawLink)
	assert.Equal(t, "6 B", stub.HumanSize)

	rec = f.get(t, "/"+f.name+"/blob/master/logo.png?raw=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="logo.png"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}, rec.Body.Bytes())
}

func TestBlob_DirectoryIsNotFound(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/"+f.name+"/blob/master/src")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotFound(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		path    string
		segment string
	}{
		{path: "/no-such-repo"},
		{path: "/.hidden/branches"},
		{path: "/" + f.name + "/tree/no-such-branch"},
		{path: "/" + f.name + "/tree/master/src/missing.go", segment: "missing.go"},
		{path: "/" + f.name + "/commit/deadbeef"},
		{path: "/" + f.name + "/commits?from=0123456789abcdef0123456789abcdef01234567"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := f.get(t, tt.path)
			require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
			body := decode[errorBody](t, rec)
			assert.Equal(t, tt.segment, body.Segment)
		})
	}
}

func TestCommits_Paging(t *testing.T) {
	f := newFixture(t)
	f.repo.Linear(3)

	rec := f.get(t, "/"+f.name+"/commits?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[output.JSONHistory](t, rec)
	require.Len(t, first.Commits, 2)
	require.True(t, first.HasMore)

	rec = f.get(t, "/"+f.name+"/commits/master?limit=10&from="+first.NextCursor)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[output.JSONHistory](t, rec)
	assert.Len(t, second.Commits, 3)
	assert.False(t, second.HasMore)
	assert.Equal(t, "init", second.Commits[2].Summary)

	rec = f.get(t, "/"+f.name+"/commits?limit=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommit_Diff(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/"+f.name+"/commit/master")
	require.Equal(t, http.StatusOK, rec.Code)

	d := decode[output.JSONDiff](t, rec)
	assert.Equal(t, output.JSONDiffSummary{FilesChanged: 1, Insertions: 1, Deletions: 1}, d.Summary)
	require.Len(t, d.Files, 1)
	assert.Equal(t, "src/main.go", d.Files[0].Path)
	assert.Equal(t, "modified", d.Files[0].Change)
}

func TestRequestLogging(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "req-123", entry.Data["request_id"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])

	rec = f.get(t, "/healthz")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}
