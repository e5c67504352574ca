package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func exportFixture() *scoreServiceFixture {
	f := newScoreServiceFixture()
	f.scoreRepo.On("ListAll", mock.Anything, repository.ScoreFilter{Year: 2025}).Return([]entity.QuizScore{
		{ID: 1, Score: 95, Month: "January", Year: 2025, CompletedAt: fixedNow,
			User: &entity.User{Email: "=cmd@quiz.com"}, Location: &entity.Location{Name: "Goa"}},
		{ID: 2, Score: 72, Month: "January", Year: 2025, CompletedAt: fixedNow,
			User: &entity.User{Email: "b@quiz.com"}, Location: &entity.Location{Name: "Kerala"}},
	}, nil)
	return f
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{"": ExportCSV, "CSV": ExportCSV, " xlsx ": ExportXLSX} {
		got, err := ParseExportFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseExportFormat("pdf")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, ExportXLSX.ContentType(), "spreadsheetml")
	assert.Contains(t, ExportCSV.ContentType(), "text/csv")
}

func TestExportScores_CSV(t *testing.T) {
	// Arrange
	f := exportFixture()
	var buf bytes.Buffer

	// Act
	err := f.svc.ExportScores(context.Background(), &buf, ExportCSV, 2025, "")

	// Assert
	require.NoError(t, err)
	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "CSV должен начинаться с BOM")

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, "'=cmd@quiz.com", records[1][1])
	assert.Equal(t, "excellent", records[1][6])
	assert.Equal(t, "Kerala", records[2][3])
	assert.Equal(t, "average", records[2][6])
}

func TestExportScores_XLSX(t *testing.T) {
	// Arrange
	f := exportFixture()
	var buf bytes.Buffer

	// Act
	err := f.svc.ExportScores(context.Background(), &buf, ExportXLSX, 2025, "")

	// Assert
	require.NoError(t, err)
	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Scores")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Email", rows[0][1])
	assert.Equal(t, "'=cmd@quiz.com", rows[1][1])
	assert.Equal(t, "95", rows[1][4])
}

func TestSanitizeForExcel(t *testing.T) {
	assert.Equal(t, "", sanitizeForExcel(""))
	assert.Equal(t, "plain", sanitizeForExcel("plain"))
	assert.Equal(t, "'+1", sanitizeForExcel("+1"))
	assert.Equal(t, "'-1", sanitizeForExcel("-1"))
	assert.Equal(t, "'@SUM(A1)", sanitizeForExcel("@SUM(A1)"))
}
