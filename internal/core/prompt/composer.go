package prompt

import (
	"fmt"
	"strings"

	"whisky-sommelier/internal/core/completion"
	"whisky-sommelier/internal/core/conversation"
	"whisky-sommelier/internal/core/taste"
	"whisky-sommelier/internal/pkg/catalog"
	"whisky-sommelier/internal/pkg/common"
)

// historyWindow 帶入補全請求的歷史訊息上限，超過時丟棄最舊的
const historyWindow = 10

// excerptLimit 酒單摘要的酒款數上限，避免提示詞無限膨脹
const excerptLimit = 12

// Composer 提示詞組裝器，酒單注入後唯讀
type Composer struct {
	catalog *catalog.Catalog
}

// NewComposer 創建提示詞組裝器
func NewComposer(cat *catalog.Catalog) *Composer {
	return &Composer{catalog: cat}
}

// Compose 組出送往補全服務的訊息序列：
// 一則 system 人設訊息（每個請求至多一則，歷史中的 system 訊息會被剔除）、
// 截尾後的對話歷史、以及帶偏好與酒單摘要的最終 user 訊息。
func (c *Composer) Compose(in *common.PreferenceInput, profile taste.Profile, insights conversation.Insights) []completion.Message {
	messages := make([]completion.Message, 0, historyWindow+2)

	messages = append(messages, completion.Message{
		Role:    common.RoleSystem,
		Content: c.personaInstruction(in),
	})

	for _, msg := range trailingHistory(in.ChatHistory) {
		// 人設訊息只出一次，歷史裡殘留的 system 訊息一律不帶
		if msg.Role == common.RoleSystem {
			continue
		}
		messages = append(messages, completion.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	messages = append(messages, completion.Message{
		Role:    common.RoleUser,
		Content: c.userMessage(in, profile, insights),
	})

	return messages
}

// personaInstruction 人設與輸出格式指示
func (c *Composer) personaInstruction(in *common.PreferenceInput) string {
	var sb strings.Builder
	sb.WriteString("你是一位專業的威士忌侍酒師，依據客人的價格帶、味覺座標與對話脈絡給出貼合的建議。\n")

	if in.RequestType == common.RequestTypeFullRecommendation {
		sb.WriteString("請從參考酒單中挑選並推薦恰好 3 款威士忌，每款都要說明推薦理由與風味特徵。\n")
	} else {
		sb.WriteString("請以對話方式回應客人的提問，需要時可附上具體酒款建議。\n")
	}

	if in.Structured() {
		sb.WriteString("請僅回傳一個 JSON 物件，不要包含其他文字或程式碼區塊標記，格式如下：\n")
		sb.WriteString("{\n")
		sb.WriteString("  \"summary\": \"整體推薦摘要\",\n")
		sb.WriteString("  \"recommendations\": [\n")
		sb.WriteString("    {\n")
		sb.WriteString("      \"name\": \"威士忌名稱\",\n")
		sb.WriteString("      \"price\": \"價格（日圓）\",\n")
		sb.WriteString("      \"reason\": \"推薦理由\",\n")
		sb.WriteString("      \"tasteProfile\": {\"body\": 0.5, \"smoke\": 0.5, \"sweet\": 0.5, \"fruit\": 0.5}\n")
		sb.WriteString("    }\n")
		sb.WriteString("  ]\n")
		sb.WriteString("}\n")
		sb.WriteString("要求：\n")
		sb.WriteString("1. recommendations 必須恰好 3 筆，不多不少\n")
		sb.WriteString("2. tasteProfile 各項數值介於 0 到 1\n")
		sb.WriteString("3. 所有欄位都必須要有不能漏掉，所有字段都必須使用雙引號\n")
	}

	return sb.String()
}

// userMessage 最終 user 訊息：人類可讀的偏好重述 + 酒單摘要 + 提及指示
func (c *Composer) userMessage(in *common.PreferenceInput, profile taste.Profile, insights conversation.Insights) string {
	var sb strings.Builder

	sb.WriteString("客人的偏好如下：\n")
	sb.WriteString(fmt.Sprintf("- 價格帶：%.0f 円 〜 %.0f 円\n", in.MinPrice, in.MaxPrice))
	sb.WriteString(fmt.Sprintf("- 口味象限：%s\n", profile.Quadrant))
	sb.WriteString(fmt.Sprintf("- 特徵值：甜度 %.2f、煙燻 %.2f、厚實 %.2f、複雜度 %.2f、親和度 %.2f\n",
		profile.Characteristics.Sweetness,
		profile.Characteristics.Smokiness,
		profile.Characteristics.Richness,
		profile.Characteristics.Complexity,
		profile.Characteristics.Approachability,
	))
	sb.WriteString(fmt.Sprintf("- 經驗程度：%s\n", insights.ExperienceLevel))
	if strings.TrimSpace(in.AdditionalPreferences) != "" {
		sb.WriteString(fmt.Sprintf("- 追加要望：%s\n", in.AdditionalPreferences))
	}
	if len(insights.MentionedRegions) > 0 {
		sb.WriteString(fmt.Sprintf("- 對話中提過的產區：%s\n", strings.Join(insights.MentionedRegions, "、")))
	}
	if len(insights.MentionedFlavors) > 0 {
		sb.WriteString(fmt.Sprintf("- 對話中提過的風味：%s\n", strings.Join(insights.MentionedFlavors, "、")))
	}

	sb.WriteString("\n參考酒單（價格帶內的酒款）：\n")
	sb.WriteString(c.catalog.Excerpt(in.MinPrice, in.MaxPrice, excerptLimit))

	if len(insights.MentionedWhiskies) > 0 {
		sb.WriteString(fmt.Sprintf(
			"\n客人在對話中提到了 %s，推薦清單中必須至少包含其中一款；若條件不完全吻合，也請選最接近的版本並說明。\n",
			strings.Join(insights.MentionedWhiskies, "、"),
		))
	}

	return sb.String()
}

// trailingHistory 取歷史的最後 historyWindow 則，保持原順序
func trailingHistory(history []common.ChatMessage) []common.ChatMessage {
	if len(history) <= historyWindow {
		return history
	}
	return history[len(history)-historyWindow:]
}
