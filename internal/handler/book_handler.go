package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// MaxBookSize - предельный размер загружаемого PDF
const MaxBookSize = 50 << 20

// BookHandler обрабатывает загрузку и список книг
type BookHandler struct {
	bookService *service.BookService
}

// NewBookHandler создает новый обработчик книг
func NewBookHandler(bookService *service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// UploadBook обрабатывает POST /api/books (multipart: title, categoryId, file)
func (h *BookHandler) UploadBook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBookSize)

	categoryID, err := strconv.ParseUint(strings.TrimSpace(c.PostForm("categoryId")), 10, 32)
	if err != nil {
		handleError(c, "BookHandler", fmt.Errorf("%w: categoryId is required", apperrors.ErrValidation))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		handleError(c, "BookHandler", fmt.Errorf("%w: file is required", apperrors.ErrValidation))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		handleError(c, "BookHandler", err)
		return
	}
	defer file.Close()

	book, err := h.bookService.Upload(c.Request.Context(), service.BookUpload{
		Title:      c.PostForm("title"),
		CategoryID: uint(categoryID),
		FileName:   fileHeader.Filename,
		File:       file,
	})
	if err != nil {
		handleError(c, "BookHandler", err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// ListBooks обрабатывает GET /api/books
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.bookService.List(c.Request.Context())
	if err != nil {
		handleError(c, "BookHandler", err)
		return
	}
	c.JSON(http.StatusOK, books)
}
