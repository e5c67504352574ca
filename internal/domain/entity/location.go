package entity

import "time"

// Location - локация (регион), к которой привязаны вопросы и результаты
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:location;size:100;not null;uniqueIndex" json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Location) TableName() string {
	return "locations"
}
