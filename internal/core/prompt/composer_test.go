package prompt

import (
	"fmt"
	"strings"
	"testing"

	"whisky-sommelier/internal/core/conversation"
	"whisky-sommelier/internal/core/taste"
	"whisky-sommelier/internal/pkg/catalog"
	"whisky-sommelier/internal/pkg/common"
)

func newTestComposer() *Composer {
	return NewComposer(catalog.Default())
}

func baseInput() *common.PreferenceInput {
	return &common.PreferenceInput{
		MinPrice:     3000,
		MaxPrice:     10000,
		RequestType:  common.RequestTypeFullRecommendation,
		OutputFormat: common.OutputFormatJSON,
	}
}

func TestComposeStructure(t *testing.T) {
	c := newTestComposer()
	profile := taste.Analyze(nil, nil)

	t.Run("首則為 system 且全序列只有一則", func(t *testing.T) {
		msgs := c.Compose(baseInput(), profile, conversation.Insights{})
		if msgs[0].Role != common.RoleSystem {
			t.Fatalf("first role = %q, want system", msgs[0].Role)
		}
		systemCount := 0
		for _, m := range msgs {
			if m.Role == common.RoleSystem {
				systemCount++
			}
		}
		if systemCount != 1 {
			t.Errorf("system message count = %d, want 1", systemCount)
		}
	})

	t.Run("尾則為帶偏好的 user 訊息", func(t *testing.T) {
		msgs := c.Compose(baseInput(), profile, conversation.Insights{})
		last := msgs[len(msgs)-1]
		if last.Role != common.RoleUser {
			t.Fatalf("last role = %q, want user", last.Role)
		}
		for _, want := range []string{"3000", "10000", profile.Quadrant} {
			if !strings.Contains(last.Content, want) {
				t.Errorf("user message missing %q", want)
			}
		}
	})

	t.Run("酒單摘要只含價格帶內酒款", func(t *testing.T) {
		msgs := c.Compose(baseInput(), profile, conversation.Insights{})
		last := msgs[len(msgs)-1].Content
		if !strings.Contains(last, "Bowmore 12") {
			t.Errorf("user message missing in-range entry Bowmore 12")
		}
		if strings.Contains(last, "Yamazaki 12") {
			t.Errorf("user message contains out-of-range entry Yamazaki 12")
		}
	})
}

func TestComposeHistoryWindow(t *testing.T) {
	c := newTestComposer()
	profile := taste.Analyze(nil, nil)

	t.Run("超長歷史只帶尾端十則", func(t *testing.T) {
		in := baseInput()
		for i := 0; i < 15; i++ {
			role := common.RoleUser
			if i%2 == 1 {
				role = common.RoleAssistant
			}
			in.ChatHistory = append(in.ChatHistory, common.ChatMessage{
				Role:    role,
				Content: fmt.Sprintf("message-%d", i),
			})
		}

		msgs := c.Compose(in, profile, conversation.Insights{})
		// system + 10 則歷史 + 最終 user 訊息
		if len(msgs) != 12 {
			t.Fatalf("len(msgs) = %d, want 12", len(msgs))
		}
		if msgs[1].Content != "message-5" {
			t.Errorf("first history message = %q, want message-5", msgs[1].Content)
		}
		if msgs[10].Content != "message-14" {
			t.Errorf("last history message = %q, want message-14", msgs[10].Content)
		}
	})

	t.Run("歷史中的 system 訊息被剔除", func(t *testing.T) {
		in := baseInput()
		in.ChatHistory = []common.ChatMessage{
			{Role: common.RoleUser, Content: "hello"},
			{Role: common.RoleSystem, Content: "stale persona"},
			{Role: common.RoleAssistant, Content: "hi"},
		}
		msgs := c.Compose(in, profile, conversation.Insights{})
		for _, m := range msgs {
			if m.Content == "stale persona" {
				t.Fatalf("stale system message leaked into composed sequence")
			}
		}
	})
}

func TestComposeMentionInstruction(t *testing.T) {
	c := newTestComposer()
	profile := taste.Analyze(nil, nil)

	t.Run("有提及酒款時附上必含指示", func(t *testing.T) {
		insights := conversation.Insights{MentionedWhiskies: []string{"Bowmore"}}
		msgs := c.Compose(baseInput(), profile, insights)
		last := msgs[len(msgs)-1].Content
		if !strings.Contains(last, "必須至少包含其中一款") {
			t.Errorf("user message missing mention instruction")
		}
		if !strings.Contains(last, "Bowmore") {
			t.Errorf("user message missing mentioned whisky name")
		}
	})

	t.Run("無提及時不附指示", func(t *testing.T) {
		msgs := c.Compose(baseInput(), profile, conversation.Insights{})
		last := msgs[len(msgs)-1].Content
		if strings.Contains(last, "必須至少包含其中一款") {
			t.Errorf("unexpected mention instruction")
		}
	})
}

func TestComposePersona(t *testing.T) {
	c := newTestComposer()
	profile := taste.Analyze(nil, nil)

	t.Run("結構化輸出時要求 JSON 格式", func(t *testing.T) {
		msgs := c.Compose(baseInput(), profile, conversation.Insights{})
		if !strings.Contains(msgs[0].Content, "recommendations") {
			t.Errorf("persona missing JSON schema instruction")
		}
	})

	t.Run("純文字模式不要求 JSON", func(t *testing.T) {
		in := baseInput()
		in.RequestType = common.RequestTypeChat
		in.OutputFormat = common.OutputFormatText
		msgs := c.Compose(in, profile, conversation.Insights{})
		if strings.Contains(msgs[0].Content, "JSON") {
			t.Errorf("chat persona unexpectedly demands JSON")
		}
	})
}
