package sequence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/futig/outreach-backend/internal/entity"
	"github.com/futig/outreach-backend/internal/pkg/formatter"
	"github.com/futig/outreach-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSequenceUsecase struct {
	rows    map[string]*entity.Sequence
	err     error
	upserts []*entity.SaveSequenceRequest
}

func (f *fakeSequenceUsecase) Upsert(_ context.Context, req *entity.SaveSequenceRequest) (*entity.Sequence, error) {
	f.upserts = append(f.upserts, req)
	if f.err != nil {
		return nil, f.err
	}
	ts := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	seq := &entity.Sequence{
		ID: req.ID, UserID: req.UserID, OrgID: req.OrgID, Name: req.Name,
		Content: req.Content, Messages: req.Messages, CreatedAt: ts, UpdatedAt: ts,
	}
	f.rows[req.ID] = seq
	return seq, nil
}

func (f *fakeSequenceUsecase) Get(_ context.Context, id string) (*entity.Sequence, error) {
	if f.err != nil {
		return nil, f.err
	}
	seq, ok := f.rows[id]
	if !ok {
		return nil, entity.ErrSequenceNotFound
	}
	return seq, nil
}

func (f *fakeSequenceUsecase) ListByUser(_ context.Context, userID string) ([]*entity.Sequence, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*entity.Sequence{}
	for _, s := range f.rows {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSequenceUsecase) ListByOrg(_ context.Context, orgID string) ([]*entity.Sequence, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*entity.Sequence{}
	for _, s := range f.rows {
		if s.OrgID == orgID {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestRouter(uc SequenceUsecase) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, NewHandler(uc, validator.New(), formatter.NewFactory()))
	})
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

type errorBody struct {
	Detail string `json:"detail"`
}

func TestSaveAndGetSequence(t *testing.T) {
	uc := &fakeSequenceUsecase{rows: map[string]*entity.Sequence{}}
	h := newTestRouter(uc)

	rec := do(t, h, http.MethodPost, "/api/sequences",
		`{"id":"s1","user_id":"u1","org_id":"o1","name":"Intro","content":"Hello","messages":[{"text":"hi","sender":"user"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var saved entity.SequenceDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "s1", saved.ID)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)

	rec = do(t, h, http.MethodGet, "/api/sequences/s1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.SequenceDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, saved, got)
	assert.Equal(t, []map[string]any{{"text": "hi", "sender": "user"}}, got.Messages)
}

func TestSaveSequence_RequestShape(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		missing string
	}{
		{name: "invalid json", body: `{"id":`},
		{name: "not an object", body: `[]`},
		{name: "wrong type", body: `{"id":"s1","user_id":7,"org_id":"o1","name":"n","content":"c","messages":[]}`},
		{name: "messages not a list", body: `{"id":"s1","user_id":"u1","org_id":"o1","name":"n","content":"c","messages":{}}`},
		{name: "missing id", body: `{"user_id":"u1","org_id":"o1","name":"n","content":"c","messages":[]}`, missing: "id"},
		{name: "missing user_id", body: `{"id":"s1","org_id":"o1","name":"n","content":"c","messages":[]}`, missing: "user_id"},
		{name: "missing org_id", body: `{"id":"s1","user_id":"u1","name":"n","content":"c","messages":[]}`, missing: "org_id"},
		{name: "missing name", body: `{"id":"s1","user_id":"u1","org_id":"o1","content":"c","messages":[]}`, missing: "name"},
		{name: "missing content", body: `{"id":"s1","user_id":"u1","org_id":"o1","name":"n","messages":[]}`, missing: "content"},
		{name: "missing messages", body: `{"id":"s1","user_id":"u1","org_id":"o1","name":"n","content":"c"}`, missing: "messages"},
		{name: "null messages", body: `{"id":"s1","user_id":"u1","org_id":"o1","name":"n","content":"c","messages":null}`, missing: "messages"},
		{name: "only id and messages", body: `{"id":"s1","messages":[]}`, missing: "user_id, org_id, name, content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeSequenceUsecase{rows: map[string]*entity.Sequence{}}

			rec := do(t, newTestRouter(uc), http.MethodPost, "/api/sequences", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			if tt.missing != "" {
				assert.Equal(t, "required field is missing: "+tt.missing, detail(t, rec))
			}
			assert.Empty(t, uc.upserts)
		})
	}
}

func TestSaveSequence_EmptyStringsAccepted(t *testing.T) {
	uc := &fakeSequenceUsecase{rows: map[string]*entity.Sequence{}}

	rec := do(t, newTestRouter(uc), http.MethodPost, "/api/sequences",
		`{"id":"","user_id":"","org_id":"","name":"","content":"","messages":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, uc.upserts, 1)
	assert.Equal(t, "", uc.upserts[0].ID)
}

func TestSaveSequence_LargeIntegersPreserved(t *testing.T) {
	uc := &fakeSequenceUsecase{rows: map[string]*entity.Sequence{}}

	rec := do(t, newTestRouter(uc), http.MethodPost, "/api/sequences",
		`{"id":"s1","user_id":"u1","org_id":"o1","name":"n","content":"c","messages":[{"text":"hi","ts":1712345678901234567}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ts":1712345678901234567`)
}

func TestSaveSequence_StorageError(t *testing.T) {
	uc := &fakeSequenceUsecase{rows: map[string]*entity.Sequence{}, err: errors.New("connection refused")}

	rec := do(t, newTestRouter(uc), http.MethodPost, "/api/sequences",
		`{"id":"s1","user_id":"u1","org_id":"o1","name":"n","content":"c","messages":[]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to store sequence: connection refused", detail(t, rec))
}

func TestGetSequence_Errors(t *testing.T) {
	rec := do(t, newTestRouter(&fakeSequenceUsecase{rows: map[string]*entity.Sequence{}}), http.MethodGet, "/api/sequences/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Sequence not found", detail(t, rec))

	uc := &fakeSequenceUsecase{err: errors.New("timeout")}
	rec = do(t, newTestRouter(uc), http.MethodGet, "/api/sequences/s1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to retrieve sequence: timeout", detail(t, rec))
}

func TestListSequences(t *testing.T) {
	uc := &fakeSequenceUsecase{rows: map[string]*entity.Sequence{
		"a": {ID: "a", UserID: "alice", OrgID: "o1"},
		"b": {ID: "b", UserID: "bob", OrgID: "o1"},
		"c": {ID: "c", UserID: "alice", OrgID: "o2"},
	}}
	h := newTestRouter(uc)

	rec := do(t, h, http.MethodGet, "/api/sequences/user/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var byUser []entity.SequenceDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byUser))
	require.Len(t, byUser, 2)
	assert.ElementsMatch(t, []string{"a", "c"}, []string{byUser[0].ID, byUser[1].ID})

	rec = do(t, h, http.MethodGet, "/api/sequences/org/o1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var byOrg []entity.SequenceDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byOrg))
	assert.Len(t, byOrg, 2)

	rec = do(t, h, http.MethodGet, "/api/sequences/user/nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	failing := &fakeSequenceUsecase{err: errors.New("boom")}
	rec = do(t, newTestRouter(failing), http.MethodGet, "/api/sequences/org/o1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to retrieve sequences: boom", detail(t, rec))
}

func TestExportSequence(t *testing.T) {
	uc := &fakeSequenceUsecase{rows: map[string]*entity.Sequence{
		"s1": {ID: "s1", Name: "Intro", Content: "Hello,\n\nWe are hiring."},
	}}
	h := newTestRouter(uc)

	rec := do(t, h, http.MethodGet, "/api/sequences/s1/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="sequence-s1.md"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "# Intro\n\nHello,\n\nWe are hiring.\n", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/sequences/s1/export?format=pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = do(t, h, http.MethodGet, "/api/sequences/s1/export?format=rtf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/sequences/missing/export", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
