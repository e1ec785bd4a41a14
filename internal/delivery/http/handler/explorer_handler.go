package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/pkg/utils"
	"github.com/huc-prioritizer/internal/pkg/validator"
	"github.com/huc-prioritizer/internal/usecase"
	"github.com/huc-prioritizer/internal/usecase/dto"
)

// ExplorerHandler - атрибуты единицы под точкой
type ExplorerHandler struct {
	explorerUC *usecase.ExplorerUseCase
	logger     *zap.Logger
}

// NewExplorerHandler создает новый экземпляр ExplorerHandler
func NewExplorerHandler(explorerUC *usecase.ExplorerUseCase, logger *zap.Logger) *ExplorerHandler {
	return &ExplorerHandler{
		explorerUC: explorerUC,
		logger:     logger,
	}
}

// UnitAt godoc
// @Summary Единица HUC-12 в точке
// @Description Возвращает атрибуты субводосбора, содержащего точку
// @Tags Explorer
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param policy query string false "exclude или include" default(exclude)
// @Success 200 {object} utils.SuccessResponse{data=dto.UnitDetailsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/units/at [get]
func (h *ExplorerHandler) UnitAt(c *fiber.Ctx) error {
	if c.Query("lat") == "" || c.Query("lon") == "" {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	var req dto.UnitAtRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.explorerUC.UnitAt(c.Context(), req.Policy, req.Lat, req.Lon)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}
