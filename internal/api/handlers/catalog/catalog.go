package catalog

import (
	"net/http"

	"whisky-sommelier/internal/pkg/catalog"

	"github.com/gin-gonic/gin"
)

// Handler 酒單處理程序
type Handler struct {
	catalog *catalog.Catalog
}

// NewHandler 創建酒單處理程序
func NewHandler(cat *catalog.Catalog) *Handler {
	return &Handler{catalog: cat}
}

// HandleList 回傳參考酒單，前端選酒頁用
func (h *Handler) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.catalog.Entries(),
	})
}
