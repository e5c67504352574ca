package entity

import "time"

// Book - загруженная PDF-книга
type Book struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	CategoryID uint      `gorm:"not null;index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	FileURL    string    `gorm:"size:500;not null" json:"fileUrl"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Book) TableName() string {
	return "books"
}
