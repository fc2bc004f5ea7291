package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jpvales/homerate-api/internal/infra/http/middleware"
	"github.com/jpvales/homerate-api/internal/usecase"
)

type SubmitLeadExecutor interface {
	Execute(ctx context.Context, input usecase.SubmitAnalyzerLeadInput) (*usecase.SubmitAnalyzerLeadOutput, error)
}

type AttachEmailExecutor interface {
	Execute(ctx context.Context, input usecase.AttachFollowupEmailInput) (*usecase.AttachFollowupEmailOutput, error)
}

type AnalyzerHandler struct {
	SubmitUC SubmitLeadExecutor
	AttachUC AttachEmailExecutor
}

func NewAnalyzerHandler(submitUC SubmitLeadExecutor, attachUC AttachEmailExecutor) *AnalyzerHandler {
	return &AnalyzerHandler{
		SubmitUC: submitUC,
		AttachUC: attachUC,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HandleSubmit (POST /api/analyzer/leads) grades a submission and returns
// the new record id, its bucket and the benchmark used.
func (h *AnalyzerHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitAnalyzerLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	input.IPAddress = getClientIP(r)

	output, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordSubmission(input.Source, string(output.ResultType))
	writeJSON(w, http.StatusCreated, output)
}

// HandleFollowupEmail (POST /api/analyzer/leads/{id}/email) attaches the
// submitter email and triggers the follow-up notifications.
func (h *AnalyzerHandler) HandleFollowupEmail(w http.ResponseWriter, r *http.Request) {
	var input usecase.AttachFollowupEmailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	input.RecordID = chi.URLParam(r, "id")

	output, err := h.AttachUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// writeUseCaseError maps the tagged error codes onto HTTP statuses. Rate
// limit and HELOC refusals keep their specific message; infrastructure
// failures collapse into a generic retry message.
func writeUseCaseError(w http.ResponseWriter, err error) {
	code := usecase.ErrorCode(err)

	switch code {
	case usecase.CodeInvalidInput:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: code})
	case usecase.CodeRateLimitExceeded:
		middleware.RecordRejection(code)
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: err.Error(), Code: code})
	case usecase.CodeHelocRequiresGreatDeal:
		middleware.RecordRejection(code)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: code})
	case usecase.CodeRecordNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: code})
	case usecase.CodeEmailAlreadySet:
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: code})
	case usecase.CodeHistoricalRateUnavailable:
		middleware.RecordBenchmarkError()
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Something went wrong. Please try again."})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Something went wrong. Please try again."})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First hop is the client.
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
