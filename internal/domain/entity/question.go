package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// QuestionOptionsCount - у каждого вопроса ровно столько вариантов ответа
const QuestionOptionsCount = 4

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		// SQLite отдает JSON-колонки строкой
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос викторины для локации и месяца
type Question struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Text          string      `gorm:"column:question;size:1000;not null" json:"question"`
	Options       StringArray `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer int         `gorm:"not null" json:"correctAnswer"`
	LocationID    uint        `gorm:"not null;index:idx_questions_period" json:"locationId"`
	Location      *Location   `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Month         string      `gorm:"size:20;not null;index:idx_questions_period" json:"month"`
	Year          int         `gorm:"not null;index:idx_questions_period" json:"year"`
	CreatedAt     time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, является ли выбранный вариант правильным.
// Неотвеченный вопрос (-1) никогда не совпадает.
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption == q.CorrectAnswer
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}
