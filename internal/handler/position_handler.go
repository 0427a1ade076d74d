package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/orgchart-planner/internal/domain"
	"github.com/orgchart-planner/internal/dto"
	"github.com/orgchart-planner/internal/service"
)

type PositionHandler struct {
	posService      service.PositionService
	settingsService service.SettingsService
	shareService    service.ShareService
	validator       *validator.Validate
	logger          *slog.Logger
}

func NewPositionHandler(
	posService service.PositionService,
	settingsService service.SettingsService,
	shareService service.ShareService,
	logger *slog.Logger,
) *PositionHandler {
	return &PositionHandler{
		posService:      posService,
		settingsService: settingsService,
		shareService:    shareService,
		validator:       validator.New(),
		logger:          logger,
	}
}

func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	pos, err := h.posService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, h.toPositionResponse(pos))
}

func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	positions, err := h.posService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toPositionResponses(positions))
}

func (h *PositionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid position id", err.Error())
		return
	}

	pos, err := h.posService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toPositionResponse(pos))
}

func (h *PositionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid position id", err.Error())
		return
	}

	var req dto.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	pos, err := h.posService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toPositionResponse(pos))
}

func (h *PositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid position id", err.Error())
		return
	}

	if err := h.posService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PositionHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.posService.DeleteAll(r.Context()); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PositionHandler) Tree(w http.ResponseWriter, r *http.Request) {
	forest, err := h.posService.Tree(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toTreeResponses(forest))
}

func (h *PositionHandler) Export(w http.ResponseWriter, r *http.Request) {
	resp, err := h.posService.Export(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *PositionHandler) BulkOverwrite(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkOverwriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	positions, err := h.posService.BulkOverwrite(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toPositionResponses(positions))
}

func (h *PositionHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toSettingsResponse(settings))
}

func (h *PositionHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	settings, err := h.settingsService.Update(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toSettingsResponse(settings))
}

func (h *PositionHandler) Share(w http.ResponseWriter, r *http.Request) {
	resp, err := h.shareService.Encode(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *PositionHandler) ImportShare(w http.ResponseWriter, r *http.Request) {
	// Данные принимаются из тела запроса или из параметра запроса data
	req := dto.ShareImportRequest{
		Data: r.URL.Query().Get("data"),
	}

	if req.Data == "" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	positions, err := h.shareService.Import(r.Context(), req.Data)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toPositionResponses(positions))
}

func (h *PositionHandler) extractID(r *http.Request) (string, error) {
	path := strings.TrimPrefix(r.URL.Path, "/positions/")
	path = strings.Trim(path, "/")

	if path == "" {
		return "", errors.New("id is required")
	}

	return path, nil
}

func (h *PositionHandler) toPositionResponse(pos *domain.Position) dto.PositionResponse {
	return dto.PositionResponse{
		ID:           pos.ID,
		Role:         pos.Role,
		ManagerID:    pos.ManagerID,
		RoleType:     string(pos.RoleType),
		Salary:       pos.Salary,
		Rate:         pos.Rate,
		Utilization:  pos.Utilization,
		TotalSalary:  pos.TotalSalary,
		OverheadCost: pos.OverheadCost,
		TotalCost:    pos.TotalCost,
		Revenue:      pos.Revenue,
		Profit:       pos.Profit,
		Margin:       pos.Margin,
		CreatedAt:    pos.CreatedAt,
	}
}

func (h *PositionHandler) toPositionResponses(positions []domain.Position) []dto.PositionResponse {
	result := make([]dto.PositionResponse, len(positions))
	for i := range positions {
		result[i] = h.toPositionResponse(&positions[i])
	}
	return result
}

func (h *PositionHandler) toTreeResponses(forest []domain.TreeNode) []dto.TreeNodeResponse {
	result := make([]dto.TreeNodeResponse, len(forest))
	for i := range forest {
		result[i] = dto.TreeNodeResponse{
			PositionResponse: h.toPositionResponse(&forest[i].Position),
			Depth:            forest[i].Depth,
			Children:         h.toTreeResponses(forest[i].Children),
		}
	}
	return result
}

func (h *PositionHandler) toSettingsResponse(settings *domain.Settings) dto.SettingsResponse {
	return dto.SettingsResponse{
		BenefitsPercent: settings.BenefitsPercent,
		OverheadPercent: settings.OverheadPercent,
		WorkWeekHours:   settings.WorkWeekHours,
	}
}

func (h *PositionHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPositionNotFound):
		h.respondError(w, http.StatusNotFound, "position not found", "")
	case errors.Is(err, domain.ErrManagerNotFound):
		h.respondError(w, http.StatusNotFound, "manager position not found", "")
	case errors.Is(err, domain.ErrSelfManager):
		h.respondError(w, http.StatusBadRequest, "position cannot be its own manager", "")
	case errors.Is(err, domain.ErrCyclicManager):
		h.respondError(w, http.StatusConflict, "assigning this manager would create a cycle", "")
	case errors.Is(err, domain.ErrInvalidRoleType):
		h.respondError(w, http.StatusBadRequest, "invalid role type, use 'billable' or 'nonBillable'", "")
	case errors.Is(err, domain.ErrInvalidBulkField):
		h.respondError(w, http.StatusBadRequest, "invalid bulk field, use 'rate' or 'utilization'", "")
	case errors.Is(err, domain.ErrInvalidShareData):
		h.respondError(w, http.StatusBadRequest, "share data is not valid base64-encoded JSON", "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *PositionHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *PositionHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
