package interview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/logger"
	"github.com/futig/interview-backend/internal/pkg/response"
	"github.com/futig/interview-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase    InterviewUsecase
	validator  *validator.Validator
	sessionTTL time.Duration
}

func NewHandler(
	usecase InterviewUsecase,
	validator *validator.Validator,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		usecase:    usecase,
		validator:  validator,
		sessionTTL: sessionTTL,
	}
}

// StartInterview handles GET /start - start a new interview
func (h *Handler) StartInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartInterview")

	req := entity.StartInterviewRequest{
		Domain: r.URL.Query().Get("domain"),
		Level:  r.URL.Query().Get("level"),
	}
	if err := h.validator.Struct(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	res, err := h.usecase.Start(ctx, sessionID(r), req.Domain, req.Level)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	setSessionCookie(w, res.SessionID, h.sessionTTL)
	response.Success(w, res)
}

// Ask handles POST /ask - evaluate an answer and ask the next question
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", id),
		zap.String("action", "Ask"),
	)

	var req entity.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateAnswer(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	if id == "" {
		h.handleUsecaseError(ctx, w, entity.ErrSessionMissing)
		return
	}

	res, err := h.usecase.RecordTurn(ctx, id, *req.Answer, req.Domain, req.Level)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, res)
}

// EndInterview handles POST /end_interview - finish the interview and build its report
func (h *Handler) EndInterview(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", id),
		zap.String("action", "EndInterview"),
	)

	var req entity.EndInterviewRequest
	if err := decodeOptional(r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	if id == "" {
		h.handleUsecaseError(ctx, w, entity.ErrSessionMissing)
		return
	}

	res, err := h.usecase.End(ctx, id, req.Domain, req.Level)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, res)
}

// DownloadReport handles GET /download_report - download the finished report
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", id),
		zap.String("action", "DownloadReport"),
	)

	format := entity.ResultFormat(r.URL.Query().Get("format"))

	file, err := h.usecase.Download(ctx, id, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "report downloaded", zap.String("filename", file.Filename))
	response.Attachment(w, file)
}

// TechnicalQuestion handles POST /technical_question - generate a multiple-choice question
func (h *Handler) TechnicalQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "TechnicalQuestion")

	var req entity.TechnicalQuestionRequest
	if err := decodeOptional(r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateTechnicalQuestion(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	item := h.usecase.GenerateTechnicalQuestion(ctx, req.Topics, req.Level)
	response.Success(w, entity.TechnicalQuestionResponse{Question: item})
}

// decodeOptional decodes a JSON body, treating an empty body as zero values.
func decodeOptional(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}

	if status == http.StatusBadRequest && err != nil {
		message = message + ": " + err.Error()
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionMissing):
		h.respondError(ctx, w, http.StatusNotFound, "no interview session found, start or finish an interview first", err)
	case errors.Is(err, entity.ErrSessionEnded):
		h.respondError(ctx, w, http.StatusConflict, "interview already ended", err)
	case errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrUnsupportedFormat):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
