package recommend

import (
	"encoding/json"
	"fmt"
	"strings"

	"whisky-sommelier/internal/pkg/common"

	"go.uber.org/zap"
)

// RecommendationResult 結構化推薦結果
type RecommendationResult struct {
	Summary         string               `json:"summary"`
	Recommendations []RecommendationItem `json:"recommendations"`
}

// RecommendationItem 單筆推薦。模型對 price 的型別不穩定（字串或數字），
// 這裡放寬為 any，不因型別雜訊擋下整包結果。
type RecommendationItem struct {
	Name         string         `json:"name"`
	Price        any            `json:"price,omitempty"`
	Reason       string         `json:"reason,omitempty"`
	TasteProfile map[string]any `json:"tasteProfile,omitempty"`
}

// ExtractStructured 從自由文字中擷取並修復內嵌的推薦 JSON。純函式：
// 找不到、解析失敗或缺少非空 recommendations 時，一律原樣回傳輸入文字
// 且第二個回傳值為 nil——已經花掉一次上游調用，寧可退回散文也不失敗。
// mentioned 非空而推薦清單完全未覆蓋時，在 summary 前面補上替代說明。
func ExtractStructured(text string, mentioned []string) (string, *RecommendationResult) {
	raw, ok := common.ExtractJSONObject(text)
	if !ok {
		return text, nil
	}

	// 以 map 解析保留模型回傳的所有欄位，修復後原樣序列化回去
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		common.LogDebug("內嵌 JSON 解析失敗，降級為純文字",
			zap.Error(err),
		)
		return text, nil
	}

	recs, ok := obj["recommendations"].([]any)
	if !ok || len(recs) == 0 {
		common.LogDebug("內嵌 JSON 缺少 recommendations，降級為純文字")
		return text, nil
	}

	if len(mentioned) > 0 && !coversMention(recs, mentioned) {
		note := fmt.Sprintf(
			"ご指名の %s は現在の価格帯・条件では選外となりましたが、以下は最も好みに近い代替案です。",
			strings.Join(mentioned, "、"),
		)
		if summary, _ := obj["summary"].(string); summary != "" {
			obj["summary"] = note + " " + summary
		} else {
			obj["summary"] = note
		}
		common.LogInfo("推薦清單未覆蓋提及酒款，已加註替代說明",
			zap.Strings("mentioned", mentioned),
		)
	}

	repaired, err := json.Marshal(obj)
	if err != nil {
		return text, nil
	}

	var result RecommendationResult
	if err := common.ParseJSONBytes(repaired, &result); err != nil {
		return string(repaired), nil
	}
	return string(repaired), &result
}

// coversMention 檢查推薦清單是否涵蓋任一提及酒款（名稱子字串、不分大小寫）
func coversMention(recs []any, mentioned []string) bool {
	for _, rec := range recs {
		item, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		name, _ := item["name"].(string)
		if name == "" {
			continue
		}
		lowered := strings.ToLower(name)
		for _, m := range mentioned {
			if strings.Contains(lowered, strings.ToLower(m)) {
				return true
			}
		}
	}
	return false
}
