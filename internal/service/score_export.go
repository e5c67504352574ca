package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ExportFormat - формат выгрузки результатов
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ParseExportFormat принимает "csv" (по умолчанию) или "xlsx"
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExportCSV:
		return ExportCSV, nil
	case ExportXLSX:
		return ExportXLSX, nil
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, s)
	}
}

// ContentType возвращает MIME-тип файла выгрузки
func (f ExportFormat) ContentType() string {
	if f == ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

var exportHeaders = []string{"ID", "Email", "Quiz", "Location", "Score", "Date", "Status"}

// ExportScores пишет результаты админки в w в выбранном формате
func (s *ScoreService) ExportScores(ctx context.Context, w io.Writer, format ExportFormat, year int, month string) error {
	rows, err := s.GetAllScores(ctx, year, month)
	if err != nil {
		return err
	}
	switch format {
	case ExportXLSX:
		return writeScoresXLSX(w, rows)
	default:
		return writeScoresCSV(w, rows)
	}
}

// writeScoresCSV пишет CSV с BOM для корректного UTF-8 в Excel
func writeScoresCSV(w io.Writer, rows []dto.ScoreRow) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			sanitizeForExcel(r.Email),
			r.Quiz,
			sanitizeForExcel(r.Location),
			strconv.Itoa(r.Score),
			r.Date,
			r.Status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeScoresXLSX пишет книгу Excel через StreamWriter
func writeScoresXLSX(w io.Writer, rows []dto.ScoreRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Scores"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ScoreService] Ошибка создания StreamWriter: %v", err)
		return fmt.Errorf("failed to create Excel stream: %w", err)
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.ID, sanitizeForExcel(r.Email), r.Quiz, sanitizeForExcel(r.Location), r.Score, r.Date, r.Status}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
