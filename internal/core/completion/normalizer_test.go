package completion

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSchema  Schema
		wantContent string
	}{
		{
			"chat-completion 風格",
			`{"choices":[{"message":{"content":"X"}}]}`,
			SchemaChatCompletion,
			"X",
		},
		{
			"message-content 風格",
			`{"content":[{"text":"Y"}]}`,
			SchemaMessageContent,
			"Y",
		},
		{
			"多個 choices 只取第一個",
			`{"choices":[{"message":{"content":"first"}},{"message":{"content":"second"}}]}`,
			SchemaChatCompletion,
			"first",
		},
		{
			"choices 為空陣列時降級為 opaque",
			`{"choices":[]}`,
			SchemaOpaque,
			`{"choices":[]}`,
		},
		{
			"content 欄位存在但為空字串仍算 chat-completion",
			`{"choices":[{"message":{"content":""}}]}`,
			SchemaChatCompletion,
			"",
		},
		{
			"text 欄位存在但為空字串仍算 message-content",
			`{"content":[{"text":""}]}`,
			SchemaMessageContent,
			"",
		},
		{
			"message 缺 content 欄位時降級為 opaque",
			`{"choices":[{"message":{"role":"assistant"}}]}`,
			SchemaOpaque,
			`{"choices":[{"message":{"role":"assistant"}}]}`,
		},
		{
			"非 JSON 響應原樣透傳",
			`upstream exploded`,
			SchemaOpaque,
			`upstream exploded`,
		},
		{
			"未知 JSON 結構原樣透傳",
			`{"result":"Z"}`,
			SchemaOpaque,
			`{"result":"Z"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]byte(tt.body))
			if got.Schema != tt.wantSchema {
				t.Errorf("Schema = %q, want %q", got.Schema, tt.wantSchema)
			}
			if got.Content != tt.wantContent {
				t.Errorf("Content = %q, want %q", got.Content, tt.wantContent)
			}
		})
	}
}

func TestNormalizeProbeOrder(t *testing.T) {
	// 同時帶兩種結構時，chat-completion 風格優先
	body := `{"choices":[{"message":{"content":"chat"}}],"content":[{"text":"msg"}]}`
	got := Normalize([]byte(body))
	if got.Schema != SchemaChatCompletion || got.Content != "chat" {
		t.Errorf("got schema %q content %q, want chat_completion/chat", got.Schema, got.Content)
	}
}

func TestNormalizeOpaqueKeepsRaw(t *testing.T) {
	body := `{"something":"else"}`
	got := Normalize([]byte(body))
	if got.Schema != SchemaOpaque {
		t.Fatalf("Schema = %q, want opaque", got.Schema)
	}
	if string(got.Raw) != body {
		t.Errorf("Raw = %q, want original body", string(got.Raw))
	}
}
