package sequence

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/futig/outreach-backend/internal/entity"
	"github.com/futig/outreach-backend/internal/pkg/formatter"
	"github.com/futig/outreach-backend/internal/pkg/logger"
	"github.com/futig/outreach-backend/internal/pkg/response"
	"github.com/futig/outreach-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxBodyBytes = 10 << 20

const (
	notFoundDetail     = "Sequence not found"
	storeFailedPrefix  = "Failed to store sequence: "
	getFailedPrefix    = "Failed to retrieve sequence: "
	listFailedPrefix   = "Failed to retrieve sequences: "
	exportFailedPrefix = "Failed to export sequence: "
)

type Handler struct {
	usecase    SequenceUsecase
	validator  *validator.Validator
	formatters *formatter.Factory
}

func NewHandler(usecase SequenceUsecase, validator *validator.Validator, formatters *formatter.Factory) *Handler {
	return &Handler{
		usecase:    usecase,
		validator:  validator,
		formatters: formatters,
	}
}

// SaveSequence handles POST /api/sequences
func (h *Handler) SaveSequence(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SaveSequence")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error(), err)
		return
	}

	req, err := h.validator.DecodeSaveSequence(body)
	if err != nil {
		h.respondError(ctx, w, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}

	ctx = logger.WithSequence(ctx, req.ID)
	ctxzap.Debug(ctx, "saving sequence",
		zap.String("user_id", req.UserID),
		zap.String("org_id", req.OrgID),
		zap.Int("message_count", len(req.Messages)),
	)

	seq, err := h.usecase.Upsert(ctx, req)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, storeFailedPrefix+err.Error(), err)
		return
	}

	response.Success(w, toSequenceDTO(seq))
}

// GetSequence handles GET /api/sequences/{id}
func (h *Handler) GetSequence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.WithSequence(logger.WithAction(r.Context(), "GetSequence"), id)

	seq, err := h.usecase.Get(ctx, id)
	if err != nil {
		h.handleGetError(ctx, w, err)
		return
	}

	response.Success(w, toSequenceDTO(seq))
}

// ListUserSequences handles GET /api/sequences/user/{user_id}
func (h *Handler) ListUserSequences(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "ListUserSequences"), zap.String("user_id", userID))

	sequences, err := h.usecase.ListByUser(ctx, userID)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, listFailedPrefix+err.Error(), err)
		return
	}

	ctxzap.Debug(ctx, "sequences listed", zap.Int("count", len(sequences)))
	response.Success(w, toSequenceDTOs(sequences))
}

// ListOrgSequences handles GET /api/sequences/org/{org_id}
func (h *Handler) ListOrgSequences(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "org_id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "ListOrgSequences"), zap.String("org_id", orgID))

	sequences, err := h.usecase.ListByOrg(ctx, orgID)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, listFailedPrefix+err.Error(), err)
		return
	}

	ctxzap.Debug(ctx, "sequences listed", zap.Int("count", len(sequences)))
	response.Success(w, toSequenceDTOs(sequences))
}

// ExportSequence handles GET /api/sequences/{id}/export?format=markdown|pdf|docx
func (h *Handler) ExportSequence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.WithSequence(logger.WithAction(r.Context(), "ExportSequence"), id)

	format, err := h.validator.ValidateExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	fmtr, err := h.formatters.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	seq, err := h.usecase.Get(ctx, id)
	if err != nil {
		h.handleGetError(ctx, w, err)
		return
	}

	body, err := fmtr.Format(seq.Name, seq.Content)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, exportFailedPrefix+err.Error(), err)
		return
	}

	ctxzap.Info(ctx, "sequence exported", zap.String("format", string(format)), zap.Int("bytes", len(body)))
	filename := "sequence-" + validator.SanitizeFilename(id) + fmtr.FileExtension()
	response.Attachment(w, fmtr.ContentType(), filename, body)
}

func (h *Handler) handleGetError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrSequenceNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, notFoundDetail, nil)
		return
	}
	h.respondError(ctx, w, http.StatusInternalServerError, getFailedPrefix+err.Error(), err)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message)
	}
	response.Error(w, status, message)
}
