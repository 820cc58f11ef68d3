package completion

import (
	"encoding/json"

	"whisky-sommelier/internal/pkg/common"

	"go.uber.org/zap"
)

// Normalize 識別後端回的響應格式並映射為統一的 Envelope。
// 探測順序固定：先 chat-completion 風格，再 message-content 風格，
// 都不符合時歸類為 opaque 原樣透傳——寧可回原始內容也不讓整個請求失敗。
func Normalize(body []byte) Envelope {
	// 以欄位存在與否判定格式，合法的空字串內容不會被降級
	var chat chatCompletionResponse
	if err := json.Unmarshal(body, &chat); err == nil && len(chat.Choices) > 0 && chat.Choices[0].Message.Content != nil {
		return Envelope{
			Schema:  SchemaChatCompletion,
			Content: *chat.Choices[0].Message.Content,
		}
	}

	var msg messageContentResponse
	if err := json.Unmarshal(body, &msg); err == nil && len(msg.Content) > 0 && msg.Content[0].Text != nil {
		return Envelope{
			Schema:  SchemaMessageContent,
			Content: *msg.Content[0].Text,
		}
	}

	common.LogWarn("未識別的上游響應格式，原樣透傳",
		zap.Int("body_length", len(body)),
	)
	return Envelope{
		Schema:  SchemaOpaque,
		Content: string(body),
		Raw:     json.RawMessage(body),
	}
}
