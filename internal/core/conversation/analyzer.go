package conversation

import (
	"sort"
	"strings"

	"whisky-sommelier/internal/pkg/catalog"
	"whisky-sommelier/internal/pkg/common"
)

// 經驗等級
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// recentWindow 保留的對話尾端訊息數
const recentWindow = 3

// Insights 對話分析結果。三個 mentioned 集合去重後按字母排序，
// 同一個詞不論提到幾次都只記一次。
type Insights struct {
	MentionedWhiskies []string             `json:"mentionedWhiskies"`
	MentionedRegions  []string             `json:"mentionedRegions"`
	MentionedFlavors  []string             `json:"mentionedFlavors"`
	ExperienceLevel   string               `json:"experienceLevel"`
	RecentMessages    []common.ChatMessage `json:"recentMessages"`
}

// Analyzer 對話分析器，詞彙表注入後唯讀
type Analyzer struct {
	vocab *catalog.Vocabulary
}

// NewAnalyzer 創建對話分析器
func NewAnalyzer(vocab *catalog.Vocabulary) *Analyzer {
	return &Analyzer{vocab: vocab}
}

// 使用者自述關鍵字：出現即強制判定等級，優先於統計規則
var beginnerKeywords = []string{
	"beginner", "don't know", "dont know", "new to whisky", "never tried",
	"初心者", "よくわからない", "初めて",
}

var advancedKeywords = []string{
	"cask strength", "single cask", "non-chill filtered", "independent bottling",
	"connoisseur", "collector", "カスクストレングス", "シングルカスク",
}

// Analyze 掃描歷史訊息與本次的自由文字偏好，產出 Insights。
// 歷史為空時回傳全空集合與 beginner。
func (a *Analyzer) Analyze(history []common.ChatMessage, additionalPreferences string) Insights {
	whiskies := make(map[string]struct{})
	regions := make(map[string]struct{})
	flavors := make(map[string]struct{})

	var userText strings.Builder
	for _, msg := range history {
		// 只看使用者發言，助理的回覆不算提及
		if msg.Role != common.RoleUser {
			continue
		}
		text := strings.ToLower(msg.Content)
		userText.WriteString(text)
		userText.WriteString(" ")

		a.matchEntities(text, whiskies)
		matchKeywords(text, a.vocab.Regions, regions)
		matchKeywords(text, a.vocab.Flavors, flavors)
	}

	// 首輪請求沒有歷史，但 additionalPreferences 也可能點名酒款，
	// 品項比對必須涵蓋它，否則第一次提到的酒會被漏掉
	if ap := strings.ToLower(additionalPreferences); ap != "" {
		userText.WriteString(ap)
		a.matchEntities(ap, whiskies)
	}

	return Insights{
		MentionedWhiskies: sortedKeys(whiskies),
		MentionedRegions:  sortedKeys(regions),
		MentionedFlavors:  sortedKeys(flavors),
		ExperienceLevel:   inferLevel(userText.String(), len(regions), len(flavors)),
		RecentMessages:    recentMessages(history),
	}
}

// matchEntities 對酒款正規名稱與別名做大小寫不敏感的子字串比對
func (a *Analyzer) matchEntities(loweredText string, out map[string]struct{}) {
	for canonical, aliases := range a.vocab.Entities {
		for _, alias := range aliases {
			if strings.Contains(loweredText, alias) {
				out[canonical] = struct{}{}
				break
			}
		}
	}
}

func matchKeywords(loweredText string, keywords []string, out map[string]struct{}) {
	for _, kw := range keywords {
		if strings.Contains(loweredText, strings.ToLower(kw)) {
			out[kw] = struct{}{}
		}
	}
}

// inferLevel 經驗等級推斷，規則依優先序：
// 自述新手 > 自述行家 > 提及量（地區 >2 或風味 >3 視為中級）> 預設新手
func inferLevel(loweredText string, regionCount, flavorCount int) string {
	for _, kw := range beginnerKeywords {
		if strings.Contains(loweredText, kw) {
			return LevelBeginner
		}
	}
	for _, kw := range advancedKeywords {
		if strings.Contains(loweredText, kw) {
			return LevelAdvanced
		}
	}
	if regionCount > 2 || flavorCount > 3 {
		return LevelIntermediate
	}
	return LevelBeginner
}

// recentMessages 取歷史的最後 3 則，保持原順序
func recentMessages(history []common.ChatMessage) []common.ChatMessage {
	if len(history) <= recentWindow {
		return history
	}
	return history[len(history)-recentWindow:]
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
