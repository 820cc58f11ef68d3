package completion

import "encoding/json"

// Message 與補全服務的對話消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request 表示發送到補全服務的請求
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Schema 已識別的響應格式
type Schema string

const (
	// SchemaChatCompletion OpenAI 風格：choices[0].message.content
	SchemaChatCompletion Schema = "chat_completion"
	// SchemaMessageContent Anthropic 風格：content[0].text
	SchemaMessageContent Schema = "message_content"
	// SchemaOpaque 無法識別，原樣透傳
	SchemaOpaque Schema = "opaque"
)

// Envelope 正規化後的統一響應，下游不需要知道是哪個後端回的
type Envelope struct {
	Schema  Schema          `json:"schema"`
	Content string          `json:"content"`
	Raw     json.RawMessage `json:"raw,omitempty"` // 僅 opaque 時保留原始內容
}

// chatCompletionResponse OpenAI 風格響應。
// content 用指標區分「欄位存在但為空字串」與「欄位不存在」，
// 格式識別看的是欄位有無，不是內容長度。
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// messageContentResponse Anthropic 風格響應
type messageContentResponse struct {
	Content []struct {
		Type string  `json:"type"`
		Text *string `json:"text"`
	} `json:"content"`
}
