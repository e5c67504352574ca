package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam создает middleware для извлечения и валидации числового параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":      fmt.Sprintf("Invalid %s", paramName),
				"error_type": "validation_error",
			})
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}

// UintFromContext возвращает значение, сохраненное ExtractUintParam
func UintFromContext(c *gin.Context, contextKey string) uint {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
