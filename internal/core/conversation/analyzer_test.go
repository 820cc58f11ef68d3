package conversation

import (
	"reflect"
	"testing"

	"whisky-sommelier/internal/pkg/catalog"
	"whisky-sommelier/internal/pkg/common"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(catalog.Default().Vocabulary())
}

func user(content string) common.ChatMessage {
	return common.ChatMessage{Role: common.RoleUser, Content: content}
}

func assistant(content string) common.ChatMessage {
	return common.ChatMessage{Role: common.RoleAssistant, Content: content}
}

func TestAnalyzeMentions(t *testing.T) {
	a := newTestAnalyzer()

	t.Run("空歷史回傳全空集合", func(t *testing.T) {
		got := a.Analyze(nil, "")
		if len(got.MentionedWhiskies) != 0 || len(got.MentionedRegions) != 0 || len(got.MentionedFlavors) != 0 {
			t.Errorf("expected empty mentions, got %+v", got)
		}
		if got.ExperienceLevel != LevelBeginner {
			t.Errorf("ExperienceLevel = %q, want %q", got.ExperienceLevel, LevelBeginner)
		}
	})

	t.Run("使用者訊息中的酒款以品牌名記錄", func(t *testing.T) {
		history := []common.ChatMessage{user("I really enjoyed Bowmore 12 last month")}
		got := a.Analyze(history, "")
		if want := []string{"Bowmore"}; !reflect.DeepEqual(got.MentionedWhiskies, want) {
			t.Errorf("MentionedWhiskies = %v, want %v", got.MentionedWhiskies, want)
		}
	})

	t.Run("助理的回覆不算提及", func(t *testing.T) {
		history := []common.ChatMessage{assistant("You might like Laphroaig 10")}
		got := a.Analyze(history, "")
		if len(got.MentionedWhiskies) != 0 {
			t.Errorf("MentionedWhiskies = %v, want empty", got.MentionedWhiskies)
		}
	})

	t.Run("追加偏好文字也比對酒款", func(t *testing.T) {
		got := a.Analyze(nil, "ラフロイグみたいな薬品っぽいのが好き")
		if want := []string{"Laphroaig"}; !reflect.DeepEqual(got.MentionedWhiskies, want) {
			t.Errorf("MentionedWhiskies = %v, want %v", got.MentionedWhiskies, want)
		}
	})

	t.Run("重複提及只記一次且排序", func(t *testing.T) {
		history := []common.ChatMessage{
			user("Talisker or maybe Bowmore?"),
			assistant("Both are coastal drams."),
			user("bowmore, definitely bowmore"),
		}
		got := a.Analyze(history, "")
		if want := []string{"Bowmore", "Talisker"}; !reflect.DeepEqual(got.MentionedWhiskies, want) {
			t.Errorf("MentionedWhiskies = %v, want %v", got.MentionedWhiskies, want)
		}
	})

	t.Run("產區與風味關鍵字", func(t *testing.T) {
		history := []common.ChatMessage{user("I love islay peat and sherry sweetness")}
		got := a.Analyze(history, "")
		if want := []string{"islay"}; !reflect.DeepEqual(got.MentionedRegions, want) {
			t.Errorf("MentionedRegions = %v, want %v", got.MentionedRegions, want)
		}
		for _, flavor := range []string{"peat", "sherry", "sweet"} {
			if !contains(got.MentionedFlavors, flavor) {
				t.Errorf("MentionedFlavors = %v, missing %q", got.MentionedFlavors, flavor)
			}
		}
	})
}

func TestAnalyzeExperienceLevel(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name    string
		history []common.ChatMessage
		want    string
	}{
		{
			"自述新手",
			[]common.ChatMessage{user("I'm a total beginner, where do I start?")},
			LevelBeginner,
		},
		{
			"自述新手優先於行家詞彙",
			[]common.ChatMessage{user("I'm a beginner but I heard cask strength is intense")},
			LevelBeginner,
		},
		{
			"行家詞彙",
			[]common.ChatMessage{user("Any independent bottling at cask strength?")},
			LevelAdvanced,
		},
		{
			"日文自述新手",
			[]common.ChatMessage{user("ウイスキーは初めてです")},
			LevelBeginner,
		},
		{
			"提及超過兩個產區視為中級",
			[]common.ChatMessage{user("I've tried islay, speyside and highland drams")},
			LevelIntermediate,
		},
		{
			"提及超過三種風味視為中級",
			[]common.ChatMessage{user("I enjoy sweet vanilla honey and citrus notes")},
			LevelIntermediate,
		},
		{
			"無線索時預設新手",
			[]common.ChatMessage{user("something nice please")},
			LevelBeginner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.history, "")
			if got.ExperienceLevel != tt.want {
				t.Errorf("ExperienceLevel = %q, want %q", got.ExperienceLevel, tt.want)
			}
		})
	}
}

func TestAnalyzeRecentMessages(t *testing.T) {
	a := newTestAnalyzer()

	t.Run("短歷史原樣保留", func(t *testing.T) {
		history := []common.ChatMessage{user("a"), assistant("b")}
		got := a.Analyze(history, "")
		if !reflect.DeepEqual(got.RecentMessages, history) {
			t.Errorf("RecentMessages = %v, want %v", got.RecentMessages, history)
		}
	})

	t.Run("長歷史只留尾端三則", func(t *testing.T) {
		history := []common.ChatMessage{
			user("1"), assistant("2"), user("3"), assistant("4"), user("5"),
		}
		got := a.Analyze(history, "")
		if !reflect.DeepEqual(got.RecentMessages, history[2:]) {
			t.Errorf("RecentMessages = %v, want %v", got.RecentMessages, history[2:])
		}
	})
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
