package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/futig/outreach-backend/internal/entity"
	"github.com/futig/outreach-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatUsecase struct {
	resp *entity.ChatResponse
	err  error
	got  *entity.ChatRequest
}

func (f *fakeChatUsecase) Chat(_ context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error) {
	f.got = req
	return f.resp, f.err
}

const historyJSON = `[{"text":"Write an intro email","sender":"user"}]`

func postForm(h *Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestChat_URLEncoded(t *testing.T) {
	uc := &fakeChatUsecase{resp: &entity.ChatResponse{
		Text:          "Here is a sequence",
		Sender:        entity.SenderAssistant,
		EmailSequence: &entity.EmailSequence{Content: "Hello", ShouldUpdateWorkspace: true},
	}}
	h := NewHandler(uc, validator.New())

	rec := postForm(h, url.Values{
		"messages":  {historyJSON},
		"workspace": {""},
		"user_id":   {"u1"},
		"org_id":    {"o1"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":{"text":"Here is a sequence","sender":"assistant","reasoning":"","email_sequence":{"content":"Hello","should_update_workspace":true}}}`, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, "u1", uc.got.UserID)
	assert.Equal(t, "o1", uc.got.OrgID)
	require.Len(t, uc.got.Messages, 1)
	assert.Equal(t, entity.SenderUser, uc.got.Messages[0].Sender)
}

func TestChat_MultipartWithImage(t *testing.T) {
	uc := &fakeChatUsecase{resp: &entity.ChatResponse{Text: "ok", Sender: entity.SenderAssistant}}
	h := NewHandler(uc, validator.New())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("messages", historyJSON))
	require.NoError(t, mw.WriteField("workspace", "Subject: Hi"))
	part, err := mw.CreateFormFile("image", "screenshot.png")
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/chat", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":{"text":"ok","sender":"assistant","reasoning":"","email_sequence":null}}`, rec.Body.String())
	assert.Equal(t, "Subject: Hi", uc.got.Workspace)
	assert.Empty(t, uc.got.UserID)
}

func TestChat_RequestShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{name: "missing messages", form: url.Values{"workspace": {""}}},
		{name: "missing workspace", form: url.Values{"messages": {historyJSON}}},
		{name: "empty messages", form: url.Values{"messages": {""}, "workspace": {""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeChatUsecase{}
			rec := postForm(NewHandler(uc, validator.New()), tt.form)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.NotEmpty(t, decodeDetail(t, rec))
			assert.Nil(t, uc.got)
		})
	}
}

func TestChat_UnparsableMessages(t *testing.T) {
	tests := []struct {
		name     string
		messages string
	}{
		{name: "invalid json", messages: "not json"},
		{name: "truncated array", messages: "[{"},
		{name: "object instead of array", messages: `{"text":"hi"}`},
		{name: "null", messages: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeChatUsecase{}
			rec := postForm(NewHandler(uc, validator.New()), url.Values{"messages": {tt.messages}, "workspace": {""}})

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.True(t, strings.HasPrefix(decodeDetail(t, rec), "decode messages: "))
			assert.Nil(t, uc.got)
		})
	}
}

func TestChat_UsecaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		detail string
	}{
		{
			name:   "malformed completion",
			err:    fmt.Errorf("%w: invalid character 'I'", entity.ErrMalformedCompletion),
			detail: "Failed to parse AI response",
		},
		{
			name:   "provider failure",
			err:    fmt.Errorf("%w: %w", entity.ErrCompletionFailed, errors.New("HTTP 401: invalid api key")),
			detail: "completion request failed: HTTP 401: invalid api key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeChatUsecase{err: tt.err}, validator.New())
			rec := postForm(h, url.Values{"messages": {historyJSON}, "workspace": {""}})

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tt.detail, decodeDetail(t, rec))
		})
	}
}
