package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/highlights-keeper/internal/audit"
	"github.com/mrlokans/highlights-keeper/internal/database"
	dbaudit "github.com/mrlokans/highlights-keeper/internal/database/audit"
	"github.com/mrlokans/highlights-keeper/internal/database/highlights"
	"github.com/mrlokans/highlights-keeper/internal/exporters"
	"github.com/mrlokans/highlights-keeper/internal/library"
)

const duneClippings = `Dune (Frank Herbert)
Location 1 | 2024-01-01
-
I must not fear.
==========
Dune (Frank Herbert)
Location 2 | 2024-01-02
-
Fear is the mind-killer.
==========
Broken section
==========
`

const foundationClippings = `Foundation (Isaac Asimov)
Location 7 | 2024-02-01
-
Violence is the last refuge of the incompetent.
==========
`

type testServer struct {
	router  *gin.Engine
	service *library.Service
	db      *database.Database
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "highlights.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	history := audit.NewService(dbaudit.NewRepository(db.DB), nil)
	service := library.NewService(highlights.NewRepository(db.DB), nil).WithRecorder(history)
	router := NewRouter(RouterConfig{
		Library:  service,
		Markdown: exporters.NewLibraryExporter(service, t.TempDir(), nil),
		History:  history,
		Database: db,
		Version:  "test",
	})
	return &testServer{router: router, service: service, db: db}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func newUploadRequest(t *testing.T, path, content string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if content != "" {
		part, err := writer.CreateFormFile("clippings_file", "My Clippings.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newJSONRequest(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(method, path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}
