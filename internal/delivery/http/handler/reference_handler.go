package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/config"
	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/utils"
	"github.com/huc-prioritizer/internal/usecase"
	"github.com/huc-prioritizer/internal/usecase/dto"
)

// weightStep - шаг слайдера веса в UI
const weightStep = 1

// ReferenceHandler отдаёт справочники: критерии и списки имён
type ReferenceHandler struct {
	referenceUC *usecase.ReferenceUseCase
	cfg         config.PrioritizationConfig
	logger      *zap.Logger
}

// NewReferenceHandler создает новый экземпляр ReferenceHandler
func NewReferenceHandler(referenceUC *usecase.ReferenceUseCase, cfg config.PrioritizationConfig, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		referenceUC: referenceUC,
		cfg:         cfg,
		logger:      logger,
	}
}

// GetCriteria godoc
// @Summary Таблица критериев
// @Description Возвращает критерии приоритизации, веса по умолчанию, допустимый диапазон весов и колонки таблицы результатов
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CriteriaResponse}
// @Router /api/v1/criteria [get]
func (h *ReferenceHandler) GetCriteria(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.CriteriaResponse{
		Criteria:     domain.Criteria(),
		Bounds:       domain.WeightBounds{Min: h.cfg.WeightMin, Max: h.cfg.WeightMax},
		Step:         weightStep,
		DefaultLimit: h.cfg.DefaultLimit,
		Columns:      domain.AttributeColumns(),
	}, nil)
}

// GetRegions godoc
// @Summary Названия регионов
// @Description Уникальные названия административных границ юрисдикции по алфавиту
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.NamesResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/reference/regions [get]
func (h *ReferenceHandler) GetRegions(c *fiber.Ctx) error {
	names, err := h.referenceUC.RegionNames(c.Context())
	if err != nil {
		h.logger.Error("Failed to get region names", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.NamesResponse{Names: names, Total: len(names)}, &utils.Meta{Total: len(names)})
}

// GetBasins godoc
// @Summary Названия бассейнов
// @Description Уникальные названия речных бассейнов по алфавиту
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.NamesResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/reference/basins [get]
func (h *ReferenceHandler) GetBasins(c *fiber.Ctx) error {
	names, err := h.referenceUC.BasinNames(c.Context())
	if err != nil {
		h.logger.Error("Failed to get basin names", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.NamesResponse{Names: names, Total: len(names)}, &utils.Meta{Total: len(names)})
}
