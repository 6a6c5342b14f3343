package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owservable/folders"
	"github.com/owservable/folders/config"
	"github.com/owservable/folders/jobs"
	"github.com/owservable/folders/storage"
)

func newTestRouter(t *testing.T, scheduler bool) (http.Handler, string) {
	t.Helper()
	base := t.TempDir()

	for _, file := range []string{"a/special/a.txt", "b/unspecial/some.txt", "c/special/c.txt"} {
		full := filepath.Join(base, filepath.FromSlash(file))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, nil, 0644))
	}

	sources, err := storage.NewSources([]*config.Source{{Name: "web-local", Directory: base}})
	require.NoError(t, err)

	catalog := folders.NewCatalog(sources)
	t.Cleanup(catalog.Close)

	if !scheduler {
		return NewRouter(catalog, nil), base
	}

	definitions, err := jobs.ParseDefinitions(config.Raw{
		"web-job": map[string]any{"source": "web-local", "operation": "find", "name": "special", "schedule": "@daily"},
	}, catalog.Names())
	require.NoError(t, err)

	s := jobs.NewScheduler(catalog, definitions)
	t.Cleanup(s.Close)
	s.RunOnce()

	return NewRouter(catalog, s), base
}

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func decodePaths(t *testing.T, recorder *httptest.ResponseRecorder) []string {
	t.Helper()
	var paths []string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &paths))
	return paths
}

func Test_Router_redirectsToApi(t *testing.T) {
	router, _ := newTestRouter(t, false)

	recorder := get(router, "/")

	assert.Equal(t, http.StatusMovedPermanently, recorder.Code)
	assert.Equal(t, "/api", recorder.Header().Get("Location"))
}

func Test_Router_sources(t *testing.T) {
	router, _ := newTestRouter(t, false)

	recorder := get(router, "/api")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"name":"web-local","kind":"local"}]`, recorder.Body.String())
}

func Test_Router_operations(t *testing.T) {
	assertion := assert.New(t)
	router, base := newTestRouter(t, false)

	recorder := get(router, "/api/web-local/files?root=b")
	assertion.Equal(http.StatusOK, recorder.Code)
	assertion.Equal([]string{filepath.Join(base, "b", "unspecial", "some.txt")}, decodePaths(t, recorder))

	recorder = get(router, "/api/web-local/folders?name=special")
	assertion.Equal(http.StatusOK, recorder.Code)
	assertion.Equal([]string{
		filepath.Join(base, "a", "special"),
		filepath.Join(base, "c", "special"),
	}, decodePaths(t, recorder))

	recorder = get(router, "/api/web-local/folders/files?name=special")
	assertion.Equal(http.StatusOK, recorder.Code)
	assertion.Equal([]string{
		filepath.Join(base, "a", "special", "a.txt"),
		filepath.Join(base, "c", "special", "c.txt"),
	}, decodePaths(t, recorder))

	recorder = get(router, "/api/web-local/folders?name=nothing")
	assertion.Equal(http.StatusOK, recorder.Code)
	assertion.Equal("[]", recorder.Body.String())
}

func Test_Router_errors(t *testing.T) {
	assertion := assert.New(t)
	router, base := newTestRouter(t, false)

	cases := map[string]int{
		"/api/unknown/files":              http.StatusNotFound,
		"/api/web-local/files?root=nope":  http.StatusNotFound,
		"/api/web-local/files?root=../..": http.StatusBadRequest,
		"/api/web-local/folders":          http.StatusBadRequest,
		"/api/web-local/folders/files":    http.StatusBadRequest,
	}

	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), nil, 0644))
	if err := os.Symlink(outside, filepath.Join(base, "escape")); err == nil {
		cases["/api/web-local/files?root=escape"] = http.StatusBadRequest
		cases["/api/web-local/folders?root=escape&name=x"] = http.StatusBadRequest
	}

	for target, status := range cases {
		recorder := get(router, target)

		assertion.Equal(status, recorder.Code, target)
		assertion.NotContains(recorder.Body.String(), "secret.txt", target)
	}
}

func Test_Router_jobs(t *testing.T) {
	router, _ := newTestRouter(t, true)

	recorder := get(router, "/api/jobs")

	require.Equal(t, http.StatusOK, recorder.Code)

	var results []*jobs.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "web-job", results[0].Job)
	assert.Equal(t, 2, results[0].Count)
}

func Test_Router_jobsWithoutScheduler(t *testing.T) {
	router, _ := newTestRouter(t, false)

	recorder := get(router, "/api/jobs")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "[]", recorder.Body.String())
}

func Test_Router_metrics(t *testing.T) {
	router, _ := newTestRouter(t, false)
	get(router, "/api/web-local/files")

	recorder := get(router, "/metrics")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `folders_traversal_operations_total{operation="files",result="success",source="web-local"}`)
}
