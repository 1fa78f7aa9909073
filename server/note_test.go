package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/memoflow/noted/server/profile"
	"github.com/memoflow/noted/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(&profile.Profile{
		Mode:         "dev",
		Port:         8080,
		WebhookToken: "test-secret-token",
	}, store.NewMemory(), zap.NewNop())
}

func doJSON(s *Server, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestCreateNoteHandler(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/notes", `{"title":"Test Note","content":"Some content","tags":["tag1"]}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var note store.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))
	require.Equal(t, 1, note.ID)
	require.Equal(t, "Test Note", note.Title)
	require.Equal(t, "Some content", note.Content)
	require.Equal(t, []string{"tag1"}, note.Tags)
	require.False(t, note.CreatedAt.IsZero())
}

func TestCreateNoteHandlerDefaults(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/notes", `{"title":"Only Title"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var note store.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))
	require.Equal(t, "", note.Content)
	require.Equal(t, []string{}, note.Tags)
}

func TestCreateNoteHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing title",
			body: `{"content":"no title here"}`,
		},
		{
			name: "empty title",
			body: `{"title":"","content":"something"}`,
		},
		{
			name: "title too long",
			body: fmt.Sprintf(`{"title":%q}`, strings.Repeat("a", 101)),
		},
		{
			name: "empty body",
			body: `{}`,
		},
		{
			name: "malformed json",
			body: `not json at all`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := newTestServer(t)
			rec := doJSON(s, http.MethodPost, "/notes", test.body, nil)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestCreateNoteIdempotency(t *testing.T) {
	s := newTestServer(t)
	payload := `{"title":"Test Note","content":"Some content"}`

	first := doJSON(s, http.MethodPost, "/notes", payload, map[string]string{"Idempotency-Key": "unique-key-1"})
	second := doJSON(s, http.MethodPost, "/notes", payload, map[string]string{"Idempotency-Key": "unique-key-1"})
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)
	require.JSONEq(t, first.Body.String(), second.Body.String())

	rec := doJSON(s, http.MethodGet, "/notes", "", nil)
	var list []*store.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	doJSON(s, http.MethodPost, "/notes", payload, map[string]string{"Idempotency-Key": "key-a"})
	doJSON(s, http.MethodPost, "/notes", payload, map[string]string{"Idempotency-Key": "key-b"})
	doJSON(s, http.MethodPost, "/notes", payload, nil)

	rec = doJSON(s, http.MethodGet, "/notes", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 4)
}

func TestGetNoteHandler(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/notes", `{"title":"Test Note","content":"Some content","tags":["tag1"]}`, nil)
	var created store.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(s, http.MethodGet, fmt.Sprintf("/notes/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched store.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Equal(t, created, fetched)
}

func TestGetNoteHandlerNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodGet, "/notes/999", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(s, http.MethodGet, "/notes/abc", "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteNoteHandler(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/notes", `{"title":"to delete"}`, nil)
	var created store.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(s, http.MethodDelete, fmt.Sprintf("/notes/%d", created.ID), "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(s, http.MethodGet, fmt.Sprintf("/notes/%d", created.ID), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(s, http.MethodDelete, fmt.Sprintf("/notes/%d", created.ID), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListNotesHandlerFilters(t *testing.T) {
	s := newTestServer(t)

	doJSON(s, http.MethodPost, "/notes", `{"title":"Buy Milk","tags":["shopping"]}`, nil)
	doJSON(s, http.MethodPost, "/notes", `{"title":"Groceries","content":"oat MILK","tags":["shopping","food"]}`, nil)
	doJSON(s, http.MethodPost, "/notes", `{"title":"Standup","tags":["work"]}`, nil)

	rec := doJSON(s, http.MethodGet, "/notes?q=milk", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []*store.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)

	rec = doJSON(s, http.MethodGet, "/notes?q=milk&tag=food", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Groceries", list[0].Title)

	rec = doJSON(s, http.MethodGet, "/notes?tag=Shopping", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 0)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(s, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}
