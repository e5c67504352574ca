package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// sniffLen - сколько байт читается для определения типа файла
const sniffLen = 3072

// FileStore сохраняет загруженные файлы и возвращает их публичный URL
type FileStore interface {
	Save(ctx context.Context, ext string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

// BookService управляет книгами
type BookService struct {
	bookRepo     repository.BookRepository
	categoryRepo repository.CategoryRepository
	store        FileStore
}

// BookUpload - данные формы загрузки книги
type BookUpload struct {
	Title      string
	CategoryID uint
	FileName   string
	File       io.Reader
}

// NewBookService создает новый сервис книг
func NewBookService(bookRepo repository.BookRepository, categoryRepo repository.CategoryRepository, store FileStore) *BookService {
	return &BookService{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
		store:        store,
	}
}

// Upload проверяет, что файл - PDF, сохраняет его и создает запись о книге
func (s *BookService) Upload(ctx context.Context, upload BookUpload) (*dto.BookResponse, error) {
	title := strings.TrimSpace(upload.Title)
	if title == "" || upload.CategoryID == 0 || upload.File == nil {
		return nil, fmt.Errorf("%w: title, category and file are required", apperrors.ErrValidation)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.File, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, fmt.Errorf("%w: file is empty", apperrors.ErrValidation)
	}
	if !mimetype.Detect(head).Is("application/pdf") {
		return nil, fmt.Errorf("%w: only PDF files are allowed", apperrors.ErrValidation)
	}
	if ext := strings.ToLower(filepath.Ext(upload.FileName)); ext != "" && ext != ".pdf" {
		return nil, fmt.Errorf("%w: only PDF files are allowed", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.GetByID(ctx, upload.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d not found", apperrors.ErrNotFound, upload.CategoryID)
		}
		return nil, err
	}

	url, err := s.store.Save(ctx, ".pdf", io.MultiReader(bytes.NewReader(head), upload.File))
	if err != nil {
		log.Printf("[BookService] Ошибка сохранения файла книги: %v", err)
		return nil, err
	}

	book := &entity.Book{Title: title, CategoryID: category.ID, FileURL: url}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		if rmErr := s.store.Remove(ctx, url); rmErr != nil {
			log.Printf("[BookService] Не удалось удалить файл %s после ошибки: %v", url, rmErr)
		}
		return nil, err
	}
	book.Category = category

	log.Printf("[BookService] Загружена книга ID=%d %q (%s)", book.ID, book.Title, url)
	resp := newBookResponse(book)
	return &resp, nil
}

// List возвращает книги с названием категории
func (s *BookService) List(ctx context.Context) ([]dto.BookResponse, error) {
	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		result = append(result, newBookResponse(&books[i]))
	}
	return result, nil
}

func newBookResponse(b *entity.Book) dto.BookResponse {
	resp := dto.BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		CategoryID: b.CategoryID,
		FileURL:    b.FileURL,
		CreatedAt:  b.CreatedAt.Format("2006-01-02"),
	}
	if b.Category != nil {
		resp.Category = b.Category.Name
	}
	return resp
}
