package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/pkg/utils"
	"github.com/huc-prioritizer/internal/usecase"
	"github.com/huc-prioritizer/internal/usecase/dto"
)

// SessionHandler - состояние выбора пользователя
type SessionHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

// NewSessionHandler создает новый экземпляр SessionHandler
func NewSessionHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Новая сессия
// @Description Создаёт сессию без режима AOI и с политикой по умолчанию
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	resp, err := h.sessionUC.Create(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, resp)
}

// Get godoc
// @Summary Состояние сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	resp, err := h.sessionUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Delete godoc
// @Summary Удалить сессию
// @Tags Sessions
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.sessionUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPolicy godoc
// @Summary Политика охраняемых земель
// @Description exclude (по умолчанию) или include; определяет вариант таблицы индикаторов
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SetPolicyRequest true "Политика"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/policy [put]
func (h *SessionHandler) SetPolicy(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.SetPolicyRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	resp, err := h.sessionUC.SetPolicy(c.Context(), id, req.Policy)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// SetMode godoc
// @Summary Режим области интереса
// @Description region, basin, geometry или entire_domain. Смена режима сбрасывает выбор
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SetModeRequest true "Режим"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/aoi/mode [put]
func (h *SessionHandler) SetMode(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.SetModeRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	resp, err := h.sessionUC.SetMode(c.Context(), id, req.Mode)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Pick godoc
// @Summary Выбор имени в слот
// @Description Записывает регион или бассейн в слот активного списка. Список растёт, пока не достигнут предел
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.PickRequest true "Слот и имя"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/aoi/picks [post]
func (h *SessionHandler) Pick(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.PickRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	resp, err := h.sessionUC.Pick(c.Context(), id, *req.Slot, req.Value)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// SetGeometry godoc
// @Summary Нарисованная область
// @Description GeoJSON Polygon, MultiPolygon, Feature или FeatureCollection. Только в режиме geometry
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SetGeometryRequest true "Геометрия"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/aoi/geometry [put]
func (h *SessionHandler) SetGeometry(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.SetGeometryRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	resp, err := h.sessionUC.SetGeometry(c.Context(), id, req.Geometry)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Reset godoc
// @Summary Сброс карты и сценария
// @Description Очищает выбор и геометрию, удаляет результат и снова разрешает запуск сценария
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/reset [post]
func (h *SessionHandler) Reset(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	resp, err := h.sessionUC.Reset(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}
