package chat

import (
	"context"
	"errors"
	"net/http"

	"github.com/futig/outreach-backend/internal/entity"
	"github.com/futig/outreach-backend/internal/pkg/logger"
	"github.com/futig/outreach-backend/internal/pkg/response"
	"github.com/futig/outreach-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxMultipartMemory bounds the in-memory part of a multipart chat form.
// The web client may attach an image, which is accepted and ignored.
const maxMultipartMemory = 32 << 20

const parseFailureDetail = "Failed to parse AI response"

type Handler struct {
	usecase   ChatUsecase
	validator *validator.Validator
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Chat handles POST /api/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	err := r.ParseMultipartForm(maxMultipartMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "invalid form data: "+err.Error(), err)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	rawMessages, ok := formValue(r, "messages")
	if !ok {
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "messages: field required", nil)
		return
	}

	workspace, ok := formValue(r, "workspace")
	if !ok {
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "workspace: field required", nil)
		return
	}

	messages, err := h.validator.DecodeChatMessages(rawMessages)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entity.ErrMissingField) {
			status = http.StatusUnprocessableEntity
		}
		h.respondError(ctx, w, status, err.Error(), err)
		return
	}

	req := &entity.ChatRequest{
		Messages:  messages,
		Workspace: workspace,
		UserID:    r.PostFormValue("user_id"),
		OrgID:     r.PostFormValue("org_id"),
	}

	ctx = logger.AddFields(ctx,
		zap.String("user_id", req.UserID),
		zap.String("org_id", req.OrgID),
	)
	ctxzap.Info(ctx, "chat request received",
		zap.Int("message_count", len(req.Messages)),
		zap.Int("workspace_length", len(req.Workspace)),
	)

	resp, err := h.usecase.Chat(ctx, req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.ChatEnvelope{Message: resp})
}

// formValue reports whether key was posted at all, even with an empty value.
func formValue(r *http.Request, key string) (string, bool) {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message)
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrMalformedCompletion) {
		h.respondError(ctx, w, http.StatusInternalServerError, parseFailureDetail, err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, err.Error(), err)
	}
}
