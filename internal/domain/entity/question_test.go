package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_IsCorrect(t *testing.T) {
	// Arrange
	question := &Question{
		ID:            1,
		Text:          "Какой город является столицей Гоа?",
		Options:       StringArray{"Панаджи", "Мадгаон", "Васко-да-Гама", "Мапуса"},
		CorrectAnswer: 0,
	}

	// Act & Assert
	assert.True(t, question.IsCorrect(0), "IsCorrect должен вернуть true для правильного ответа")
	assert.False(t, question.IsCorrect(1))
	assert.False(t, question.IsCorrect(3))
}

func TestQuestion_IsCorrect_UnansweredNeverMatches(t *testing.T) {
	// Даже при повреждённом индексе -1 неотвеченный вопрос не засчитывается
	question := &Question{CorrectAnswer: -1}

	assert.False(t, question.IsCorrect(-1))
}

func TestQuestion_IsValidOption(t *testing.T) {
	// Arrange
	question := &Question{Options: StringArray{"A", "B", "C", "D"}}

	// Act & Assert
	for i := 0; i < QuestionOptionsCount; i++ {
		assert.True(t, question.IsValidOption(i), "Индекс %d должен быть валидным", i)
	}
	assert.False(t, question.IsValidOption(-1), "Отрицательный индекс должен быть невалидным")
	assert.False(t, question.IsValidOption(4), "Индекс вне диапазона должен быть невалидным")
	assert.Equal(t, 4, question.OptionsCount())
}

func TestStringArray_ScanValue(t *testing.T) {
	// Arrange
	original := StringArray{"один", "два", "три", "четыре"}

	// Act
	value, err := original.Value()
	require.NoError(t, err)

	var fromBytes StringArray
	require.NoError(t, fromBytes.Scan(value))

	var fromString StringArray
	require.NoError(t, fromString.Scan(string(value.([]byte))))

	// Assert
	assert.Equal(t, original, fromBytes)
	assert.Equal(t, original, fromString)
}

func TestStringArray_EmptyAndNil(t *testing.T) {
	value, err := StringArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value, "Пустой массив сохраняется как [] а не null")

	var arr StringArray
	require.NoError(t, arr.Scan(nil))
	assert.Empty(t, arr)

	assert.Error(t, arr.Scan(42), "Неподдерживаемый тип должен вернуть ошибку")
}

func TestQuestion_TableName(t *testing.T) {
	assert.Equal(t, "questions", Question{}.TableName())
}
