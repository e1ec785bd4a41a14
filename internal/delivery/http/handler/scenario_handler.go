package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/pkg/utils"
	"github.com/huc-prioritizer/internal/usecase"
	"github.com/huc-prioritizer/internal/usecase/dto"
)

// ScenarioHandler - запуск сценариев и выгрузка результатов
type ScenarioHandler struct {
	scenarioUC *usecase.ScenarioUseCase
	exportUC   *usecase.ExportUseCase
	logger     *zap.Logger
}

// NewScenarioHandler создает новый экземпляр ScenarioHandler
func NewScenarioHandler(scenarioUC *usecase.ScenarioUseCase, exportUC *usecase.ExportUseCase, logger *zap.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioUC: scenarioUC,
		exportUC:   exportUC,
		logger:     logger,
	}
}

// Run godoc
// @Summary Запуск сценария
// @Description Ранжирует единицы области интереса сессии по взвешенной сумме индикаторов. Повторный запуск до сброса возвращает 409
// @Tags Scenarios
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.RunScenarioRequest false "Веса и размер топа"
// @Success 200 {object} utils.SuccessResponse{data=domain.ScenarioResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/scenario [post]
func (h *ScenarioHandler) Run(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.RunScenarioRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return utils.SendError(c, err)
		}
	}

	result, err := h.scenarioUC.RunForSession(c.Context(), id, req.Weights, string(req.Limit))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.UnitCount, Limit: result.Limit})
}

// GetResult godoc
// @Summary Последний результат сессии
// @Tags Scenarios
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=domain.ScenarioResult}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/scenario [get]
func (h *ScenarioHandler) GetResult(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	result, err := h.scenarioUC.GetResult(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.UnitCount, Limit: result.Limit})
}

// Export godoc
// @Summary Таблица атрибутов
// @Description Выгрузка атрибутов всех единиц области интереса с баллом
// @Tags Scenarios
// @Produce octet-stream
// @Param id path string true "ID сессии"
// @Param format query string false "xlsx или csv" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/scenario/export [get]
func (h *ScenarioHandler) Export(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	export, err := h.exportUC.ExportSession(c.Context(), id, c.Query("format"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendAttachment(c, export.ContentType, export.Filename, export.Data)
}

// Evaluate godoc
// @Summary Разовый расчёт
// @Description Прогон сценария без сессии и блокировки
// @Tags Scenarios
// @Accept json
// @Produce json
// @Param request body dto.EvaluateRequest true "Полная конфигурация сценария"
// @Success 200 {object} utils.SuccessResponse{data=domain.ScenarioResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/scenarios/evaluate [post]
func (h *ScenarioHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	result, err := h.scenarioUC.EvaluateRequest(c.Context(), req)
	if err != nil {
		h.logger.Warn("Evaluation failed", zap.String("mode", req.Mode), zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.UnitCount, Limit: result.Limit})
}
