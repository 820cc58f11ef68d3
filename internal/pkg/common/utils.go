package common

import (
	"time"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// NewErrorBody 構建統一的錯誤響應內容
func NewErrorBody(message, details string) ErrorResponse {
	return ErrorResponse{
		Error:     message,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
