package recommend

import (
	"context"
	"fmt"

	"whisky-sommelier/internal/core/ai/cache"
	"whisky-sommelier/internal/core/completion"
	"whisky-sommelier/internal/core/conversation"
	"whisky-sommelier/internal/core/prompt"
	"whisky-sommelier/internal/core/taste"
	"whisky-sommelier/internal/infrastructure/config"
	"whisky-sommelier/internal/pkg/catalog"
	"whisky-sommelier/internal/pkg/common"

	"go.uber.org/zap"
)

// 價格帶缺省值（日圓）
const (
	defaultMinPrice = 0
	defaultMaxPrice = 50000
)

// Service 推薦管線：口味分析與對話分析各自獨立，
// 結果餵給提示詞組裝，再經調度、正規化與結構化擷取
type Service struct {
	config       *config.Config
	convAnalyzer *conversation.Analyzer
	composer     *prompt.Composer
	dispatcher   *completion.Dispatcher
	cacheStore   cache.Store
}

// Output 單次管線執行的完整結果
type Output struct {
	Envelope       completion.Envelope   `json:"envelope"`
	Recommendation *RecommendationResult `json:"recommendation,omitempty"`
	Profile        taste.Profile         `json:"profile"`
	Insights       conversation.Insights `json:"insights"`
}

// NewService 創建推薦服務
func NewService(cfg *config.Config, cat *catalog.Catalog, store cache.Store) *Service {
	return &Service{
		config:       cfg,
		convAnalyzer: conversation.NewAnalyzer(cat.Vocabulary()),
		composer:     prompt.NewComposer(cat),
		dispatcher: completion.NewDispatcher(
			cfg.Sommelier.EndpointList(),
			cfg.Sommelier.APIKey,
			cfg.Sommelier.Timeout,
		),
		cacheStore: store,
	}
}

// Recommend 執行整條管線。回傳值要嘛是完整的結果，要嘛是錯誤，
// 不會有部分結果。
func (s *Service) Recommend(ctx context.Context, in *common.PreferenceInput) (*Output, error) {
	applyDefaults(in)

	profile := taste.Analyze(in.TasteX, in.TasteY)
	insights := s.convAnalyzer.Analyze(in.ChatHistory, in.AdditionalPreferences)

	messages := s.composer.Compose(in, profile, insights)
	req := &completion.Request{
		Model:       s.config.Sommelier.Model,
		Messages:    messages,
		MaxTokens:   s.config.Sommelier.MaxTokens,
		Temperature: s.config.Sommelier.Temperature,
	}

	envelope, err := s.complete(ctx, req, len(in.ChatHistory) == 0)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Envelope: *envelope,
		Profile:  profile,
		Insights: insights,
	}

	// 結構化模式下從散文中擷取並修復內嵌 JSON；失敗時原樣保留文字
	if in.Structured() {
		repaired, result := ExtractStructured(envelope.Content, insights.MentionedWhiskies)
		out.Envelope.Content = repaired
		out.Recommendation = result
	}

	return out, nil
}

// complete 送出補全請求並正規化響應。useCache 只在無對話歷史時為真，
// 確保多輪對話不會拿到舊回應。
func (s *Service) complete(ctx context.Context, req *completion.Request, useCache bool) (*completion.Envelope, error) {
	cacheKey := ""
	if useCache && s.cacheStore != nil {
		var err error
		cacheKey, err = common.ToJSON(req)
		if err != nil {
			cacheKey = ""
		}
		if cacheKey != "" {
			if val, err := s.cacheStore.Get(ctx, cacheKey); err == nil && val != "" {
				var env completion.Envelope
				if err := common.ParseJSON(val, &env); err == nil {
					return &env, nil
				}
			}
		}
	}

	body, err := s.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("completion dispatch failed: %w", err)
	}

	env := completion.Normalize(body)

	if cacheKey != "" {
		if val, err := common.ToJSON(env); err == nil {
			if err := s.cacheStore.Set(ctx, cacheKey, val); err != nil {
				common.LogWarn("快取寫入失敗",
					zap.Error(err),
				)
			}
		}
	}

	return &env, nil
}

// Close 釋放服務資源
func (s *Service) Close() error {
	return s.dispatcher.Close()
}

// applyDefaults 補上缺省欄位並保證 minPrice ≤ maxPrice 且不為負
func applyDefaults(in *common.PreferenceInput) {
	if in.MinPrice < 0 {
		in.MinPrice = defaultMinPrice
	}
	if in.MaxPrice <= 0 {
		in.MaxPrice = defaultMaxPrice
	}
	if in.MinPrice > in.MaxPrice {
		in.MinPrice, in.MaxPrice = in.MaxPrice, in.MinPrice
	}
	if in.RequestType == "" {
		in.RequestType = common.RequestTypeFullRecommendation
	}
	if in.OutputFormat == "" {
		if in.RequestType == common.RequestTypeFullRecommendation {
			in.OutputFormat = common.OutputFormatJSON
		} else {
			in.OutputFormat = common.OutputFormatText
		}
	}
}
