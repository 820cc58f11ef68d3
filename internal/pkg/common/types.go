package common

// ChatMessage 對話消息，append 後不再修改
type ChatMessage struct {
	Role    string `json:"role"` // user / assistant / system
	Content string `json:"content"`
}

// 對話角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// 請求類型
const (
	RequestTypeChat               = "chat"
	RequestTypeFullRecommendation = "full_recommendation"
)

// 輸出格式
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// PreferenceInput 口味偏好輸入，為整條管線的起點
type PreferenceInput struct {
	MinPrice              float64       `json:"minPrice"`
	MaxPrice              float64       `json:"maxPrice"`
	TasteX                *float64      `json:"tasteX"` // 0~1 或 0~300，酒體 輕→重
	TasteY                *float64      `json:"tasteY"` // 0~1 或 0~300，果香→煙燻
	ComplexityX           *float64      `json:"complexityX,omitempty"`
	ComplexityY           *float64      `json:"complexityY,omitempty"`
	AdditionalPreferences string        `json:"additionalPreferences"`
	ChatHistory           []ChatMessage `json:"chatHistory,omitempty"`
	RequestType           string        `json:"requestType,omitempty"`
	OutputFormat          string        `json:"outputFormat,omitempty"`
}

// Structured 是否要求結構化（JSON）輸出
func (p *PreferenceInput) Structured() bool {
	return p.OutputFormat == OutputFormatJSON
}
