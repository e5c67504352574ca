package dto

// LocationRequest - тело POST /api/locations
type LocationRequest struct {
	Location string `json:"location"`
}

// CategoryRequest - тело POST /api/categories
type CategoryRequest struct {
	Category string `json:"category"`
}

// QuestionRequest - тело POST/PUT /api/questions.
// CorrectAnswer - указатель, чтобы отличить 0 от отсутствующего поля.
type QuestionRequest struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
	Location      uint     `json:"location"`
	Month         string   `json:"month"`
	Year          int      `json:"year"`
}

// BookResponse - книга с названием категории
type BookResponse struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	CategoryID uint   `json:"categoryId"`
	Category   string `json:"category"`
	FileURL    string `json:"fileUrl"`
	CreatedAt  string `json:"createdAt"`
}
