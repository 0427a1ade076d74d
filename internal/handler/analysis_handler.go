package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/orgchart-planner/internal/domain"
	"github.com/orgchart-planner/internal/dto"
	"github.com/orgchart-planner/internal/service"
)

type AnalysisHandler struct {
	analysisService service.AnalysisService
	logger          *slog.Logger
}

func NewAnalysisHandler(analysisService service.AnalysisService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		logger:          logger,
	}
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	result, err := h.analysisService.Analyze(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAnalysisUnavailable):
			h.respondError(w, http.StatusServiceUnavailable, "analysis is not configured", "")
		case errors.Is(err, domain.ErrAnalysisFailed):
			h.logger.Error("analysis failed", slog.Any("error", err))
			h.respondError(w, http.StatusBadGateway, "analysis provider returned an invalid result", "")
		default:
			h.logger.Error("internal error", slog.Any("error", err))
			h.respondError(w, http.StatusInternalServerError, "internal server error", "")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *AnalysisHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
