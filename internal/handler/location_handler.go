package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/service"
)

// LocationHandler обрабатывает справочники локаций и категорий
type LocationHandler struct {
	locationService *service.LocationService
	categoryService *service.CategoryService
}

// NewLocationHandler создает новый обработчик справочников
func NewLocationHandler(locationService *service.LocationService, categoryService *service.CategoryService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		categoryService: categoryService,
	}
}

// ListLocations обрабатывает GET /api/locations
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.locationService.List(c.Request.Context())
	if err != nil {
		handleError(c, "LocationHandler", err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// CreateLocation обрабатывает POST /api/locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req dto.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), req.Location)
	if err != nil {
		handleError(c, "LocationHandler", err)
		return
	}
	c.JSON(http.StatusCreated, location)
}

// ListCategories обрабатывает GET /api/categories
func (h *LocationHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		handleError(c, "LocationHandler", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory обрабатывает POST /api/categories
func (h *LocationHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Category)
	if err != nil {
		handleError(c, "LocationHandler", err)
		return
	}
	c.JSON(http.StatusCreated, category)
}
