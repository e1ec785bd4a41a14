package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/errors"
)

// Форматы выгрузки таблицы атрибутов
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

const exportSheet = "HUC attributes"

// Export - готовый к отдаче файл
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportUseCase выгружает атрибуты всех единиц области интереса
type ExportUseCase struct {
	scenario *ScenarioUseCase
	logger   *zap.Logger
}

// NewExportUseCase создает новый экземпляр ExportUseCase
func NewExportUseCase(scenario *ScenarioUseCase, logger *zap.Logger) *ExportUseCase {
	return &ExportUseCase{
		scenario: scenario,
		logger:   logger,
	}
}

// ExportSession выгружает последний результат сессии в заданном формате
func (uc *ExportUseCase) ExportSession(ctx context.Context, id uuid.UUID, format string) (*Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatXLSX {
		return nil, errors.ErrInvalidExportFormat.WithDetails(map[string]interface{}{
			"format": format,
		})
	}

	result, err := uc.scenario.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.Export(result, format)
}

// Export строит файл по результату
func (uc *ExportUseCase) Export(result *domain.ScenarioResult, format string) (*Export, error) {
	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case ExportFormatXLSX:
		data, err = XLSX(result)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportFormatCSV:
		data, err = CSV(result)
		contentType = "text/csv"
	default:
		return nil, errors.ErrInvalidExportFormat.WithDetails(map[string]interface{}{
			"format": format,
		})
	}
	if err != nil {
		uc.logger.Error("Failed to build export",
			zap.String("format", format),
			zap.String("result_id", result.ID.String()),
			zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return &Export{
		Data:        data,
		ContentType: contentType,
		Filename:    fmt.Sprintf("huc12_priorities_%s.%s", result.ID.String()[:8], format),
	}, nil
}

// XLSX строит книгу с одним листом: заголовки колонок и строка на единицу
func XLSX(result *domain.ScenarioResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	columns := domain.AttributeColumns()
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, col.Label); err != nil {
			return nil, err
		}
	}

	for r, unit := range rankedUnits(result) {
		for i, col := range columns {
			v, ok := unit.ColumnValue(col.Key)
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "A", last, 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSV - та же таблица в CSV; отсутствующие значения пустые
func CSV(result *domain.ScenarioResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	columns := domain.AttributeColumns()
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Label
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, unit := range rankedUnits(result) {
		row := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := unit.ColumnValue(col.Key); ok {
				row[i] = formatCell(v)
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rankedUnits(result *domain.ScenarioResult) []domain.ScoredUnit {
	if result == nil {
		return nil
	}
	return result.Ranked
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
