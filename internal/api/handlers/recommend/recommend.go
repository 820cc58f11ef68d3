package recommend

import (
	"errors"
	"net/http"

	"whisky-sommelier/internal/core/completion"
	recommendService "whisky-sommelier/internal/core/recommend"
	"whisky-sommelier/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler 推薦處理程序
type Handler struct {
	service *recommendService.Service
}

// NewHandler 創建推薦處理程序
func NewHandler(service *recommendService.Service) *Handler {
	return &Handler{service: service}
}

// RecommendRequest 推薦請求，欄位語意見 internal/pkg/common.PreferenceInput
type RecommendRequest struct {
	MinPrice              float64              `json:"minPrice"`
	MaxPrice              float64              `json:"maxPrice"`
	TasteX                *float64             `json:"tasteX"`
	TasteY                *float64             `json:"tasteY"`
	ComplexityX           *float64             `json:"complexityX,omitempty"`
	ComplexityY           *float64             `json:"complexityY,omitempty"`
	AdditionalPreferences string               `json:"additionalPreferences"`
	ChatHistory           []common.ChatMessage `json:"chatHistory,omitempty"`
	RequestType           string               `json:"requestType,omitempty"`
	OutputFormat          string               `json:"outputFormat,omitempty"`
}

// HandleRecommend 執行推薦管線
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理推薦請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.NewErrorBody("Invalid request format", err.Error()))
		return
	}

	if err := validateRequest(&req); err != nil {
		common.LogError("請求驗證失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.NewErrorBody("Invalid request", err.Error()))
		return
	}

	input := &common.PreferenceInput{
		MinPrice:              req.MinPrice,
		MaxPrice:              req.MaxPrice,
		TasteX:                req.TasteX,
		TasteY:                req.TasteY,
		ComplexityX:           req.ComplexityX,
		ComplexityY:           req.ComplexityY,
		AdditionalPreferences: req.AdditionalPreferences,
		ChatHistory:           req.ChatHistory,
		RequestType:           req.RequestType,
		OutputFormat:          req.OutputFormat,
	}

	out, err := h.service.Recommend(c.Request.Context(), input)
	if err != nil {
		var exhausted *completion.ExhaustedError
		if errors.As(err, &exhausted) {
			common.LogError("所有補全端點皆失敗",
				zap.String("request_id", requestID),
				zap.Int("attempts", len(exhausted.Failures)),
			)
			c.JSON(http.StatusBadGateway, common.NewErrorBody("All completion endpoints failed", exhausted.Error()))
			return
		}
		common.LogError("推薦管線失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, common.NewErrorBody("Recommendation failed", err.Error()))
		return
	}

	common.LogInfo("推薦請求成功",
		zap.String("request_id", requestID),
		zap.String("schema", string(out.Envelope.Schema)),
		zap.Bool("structured", out.Recommendation != nil),
	)

	response := gin.H{
		"success":              true,
		"data":                 out.Envelope,
		"tasteAnalysis":        out.Profile,
		"conversationInsights": out.Insights,
	}
	if out.Recommendation != nil {
		response["recommendation"] = out.Recommendation
	}

	c.JSON(http.StatusOK, response)
}

// validateRequest 檢查數值欄位是否落在可解釋的範圍。
// 價格缺省與 min/max 順序交由管線補正，這裡只擋明顯的格式錯誤。
func validateRequest(req *RecommendRequest) error {
	if req.TasteX != nil && (*req.TasteX < 0 || *req.TasteX > 300) {
		return common.NewValidationError("tasteX out of range")
	}
	if req.TasteY != nil && (*req.TasteY < 0 || *req.TasteY > 300) {
		return common.NewValidationError("tasteY out of range")
	}
	if req.RequestType != "" &&
		req.RequestType != common.RequestTypeChat &&
		req.RequestType != common.RequestTypeFullRecommendation {
		return common.NewValidationError("unknown requestType")
	}
	if req.OutputFormat != "" &&
		req.OutputFormat != common.OutputFormatText &&
		req.OutputFormat != common.OutputFormatJSON {
		return common.NewValidationError("unknown outputFormat")
	}
	for _, msg := range req.ChatHistory {
		if msg.Role != common.RoleUser && msg.Role != common.RoleAssistant && msg.Role != common.RoleSystem {
			return common.NewValidationError("unknown chat role: " + msg.Role)
		}
	}
	return nil
}
