package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"whisky-sommelier/internal/pkg/common"
)

// TasteScores 酒款風味評分（0~1）
type TasteScores struct {
	Body  float64 `json:"body"`
	Smoke float64 `json:"smoke"`
	Sweet float64 `json:"sweet"`
	Fruit float64 `json:"fruit"`
}

// Entry 參考酒單的單一酒款
type Entry struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Brand        string      `json:"brand"`
	Price        int         `json:"price"` // 日圓
	Amount       string      `json:"amount,omitempty"`
	Category     string      `json:"category"`
	Region       string      `json:"region"`
	Subcategory  string      `json:"subcategory,omitempty"`
	TastingNote  string      `json:"tastingNote"`
	Aliases      []string    `json:"aliases,omitempty"`
	TasteProfile TasteScores `json:"taste_profile"`
}

// Catalog 參考酒單，載入後視為唯讀
type Catalog struct {
	entries []Entry
}

// Vocabulary 對話分析用的固定詞彙表
type Vocabulary struct {
	// 品牌正規名稱 → 小寫別名（含品牌與完整酒款名稱）
	Entities map[string][]string
	Regions  []string
	Flavors  []string
}

// New 以指定酒款建立酒單
func New(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Default 內建的參考酒單
func Default() *Catalog {
	return New(defaultEntries)
}

// LoadFile 從 JSON 檔載入酒單（格式同 Entry 陣列），供部署時替換內建酒單
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var entries []Entry
	if err := common.ParseJSONBytes(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog file contains no entries")
	}
	return New(entries), nil
}

// Entries 回傳酒款列表（呼叫端不得修改）
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Excerpt 組出給提示詞用的酒單摘要，只保留價格範圍內的酒款。
// 範圍內沒有任何酒款時退回整份酒單，讓模型自行權衡。
func (c *Catalog) Excerpt(minPrice, maxPrice float64, limit int) string {
	var picked []Entry
	for _, e := range c.entries {
		if float64(e.Price) >= minPrice && float64(e.Price) <= maxPrice {
			picked = append(picked, e)
		}
	}
	if len(picked) == 0 {
		picked = c.entries
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].Price < picked[j].Price })
	if limit > 0 && len(picked) > limit {
		picked = picked[:limit]
	}

	var sb strings.Builder
	for _, e := range picked {
		sb.WriteString(fmt.Sprintf("- %s（%s／%s）約 %d 円：%s\n",
			e.Name, e.Region, e.Category, e.Price, e.TastingNote))
	}
	return sb.String()
}

// Vocabulary 由酒單推導詞彙表；地區與風味為固定關鍵字
func (c *Catalog) Vocabulary() *Vocabulary {
	entities := make(map[string][]string, len(c.entries))
	for _, e := range c.entries {
		// 以品牌為正規名稱，同品牌的多個酒款共用一組別名
		key := e.Brand
		if key == "" {
			key = e.Name
		}
		aliases := entities[key]
		aliases = append(aliases, strings.ToLower(key), strings.ToLower(e.Name))
		for _, a := range e.Aliases {
			aliases = append(aliases, strings.ToLower(a))
		}
		entities[key] = aliases
	}
	return &Vocabulary{
		Entities: entities,
		Regions:  regionKeywords,
		Flavors:  flavorKeywords,
	}
}

var regionKeywords = []string{
	"islay", "speyside", "highland", "lowland", "campbeltown",
	"japan", "japanese", "scotland", "scotch", "ireland", "irish",
	"kentucky", "bourbon", "tennessee",
	"アイラ", "スペイサイド", "ハイランド", "ジャパニーズ", "スコッチ", "バーボン",
}

var flavorKeywords = []string{
	"smoky", "smoke", "peat", "peaty", "fruity", "sweet", "sherry",
	"vanilla", "honey", "citrus", "chocolate", "spicy", "floral",
	"nutty", "caramel", "oak", "salty", "maritime",
	"スモーキー", "ピート", "フルーティ", "甘い", "シェリー", "バニラ", "蜂蜜",
}

var defaultEntries = []Entry{
	{
		ID: "W001", Brand: "Bowmore", Name: "Bowmore 12", Price: 5800, Amount: "700ml",
		Category: "Whiskey", Region: "Islay", Subcategory: "Single Malt",
		TastingNote:  "穏やかなピートと蜂蜜、潮の香り",
		Aliases:      []string{"bowmore", "ボウモア"},
		TasteProfile: TasteScores{Body: 0.55, Smoke: 0.6, Sweet: 0.5, Fruit: 0.45},
	},
	{
		ID: "W002", Brand: "Laphroaig", Name: "Laphroaig 10", Price: 6500, Amount: "750ml",
		Category: "Whiskey", Region: "Islay", Subcategory: "Single Malt",
		TastingNote:  "強烈なピートと薬品香、海藻とスモーク",
		Aliases:      []string{"laphroaig", "ラフロイグ"},
		TasteProfile: TasteScores{Body: 0.75, Smoke: 0.95, Sweet: 0.2, Fruit: 0.2},
	},
	{
		ID: "W003", Brand: "Ardbeg", Name: "Ardbeg 10", Price: 6200, Amount: "700ml",
		Category: "Whiskey", Region: "Islay", Subcategory: "Single Malt",
		TastingNote:  "激しいスモークにレモンと黒胡椒",
		Aliases:      []string{"ardbeg", "アードベッグ"},
		TasteProfile: TasteScores{Body: 0.7, Smoke: 0.9, Sweet: 0.25, Fruit: 0.35},
	},
	{
		ID: "W004", Brand: "Lagavulin", Name: "Lagavulin 16", Price: 9800, Amount: "700ml",
		Category: "Whiskey", Region: "Islay", Subcategory: "Single Malt",
		TastingNote:  "重厚なピートとシェリーの甘み",
		Aliases:      []string{"lagavulin", "ラガヴーリン"},
		TasteProfile: TasteScores{Body: 0.85, Smoke: 0.9, Sweet: 0.4, Fruit: 0.3},
	},
	{
		ID: "W005", Brand: "Macallan", Name: "The Macallan 12 Sherry Oak", Price: 12000, Amount: "700ml",
		Category: "Whiskey", Region: "Speyside", Subcategory: "Single Malt",
		TastingNote:  "シェリー樽由来のドライフルーツとスパイス",
		Aliases:      []string{"macallan", "マッカラン"},
		TasteProfile: TasteScores{Body: 0.7, Smoke: 0.1, Sweet: 0.75, Fruit: 0.7},
	},
	{
		ID: "W006", Brand: "Glenfiddich", Name: "Glenfiddich 12", Price: 4300, Amount: "700ml",
		Category: "Whiskey", Region: "Speyside", Subcategory: "Single Malt",
		TastingNote:  "洋梨とりんご、軽やかでフレッシュ",
		Aliases:      []string{"glenfiddich", "グレンフィディック"},
		TasteProfile: TasteScores{Body: 0.35, Smoke: 0.05, Sweet: 0.6, Fruit: 0.8},
	},
	{
		ID: "W007", Brand: "Glenlivet", Name: "The Glenlivet 12", Price: 4500, Amount: "700ml",
		Category: "Whiskey", Region: "Speyside", Subcategory: "Single Malt",
		TastingNote:  "柑橘と花の香り、滑らかな口当たり",
		Aliases:      []string{"glenlivet", "グレンリベット"},
		TasteProfile: TasteScores{Body: 0.35, Smoke: 0.05, Sweet: 0.55, Fruit: 0.75},
	},
	{
		ID: "W008", Brand: "Highland Park", Name: "Highland Park 12", Price: 6800, Amount: "700ml",
		Category: "Whiskey", Region: "Highland", Subcategory: "Single Malt",
		TastingNote:  "ヘザーハニーと穏やかなスモーク",
		Aliases:      []string{"highland park", "ハイランドパーク"},
		TasteProfile: TasteScores{Body: 0.55, Smoke: 0.5, Sweet: 0.6, Fruit: 0.5},
	},
	{
		ID: "W009", Brand: "Talisker", Name: "Talisker 10", Price: 6900, Amount: "700ml",
		Category: "Whiskey", Region: "Highland", Subcategory: "Single Malt",
		TastingNote:  "黒胡椒と潮、力強いスモーク",
		Aliases:      []string{"talisker", "タリスカー"},
		TasteProfile: TasteScores{Body: 0.7, Smoke: 0.7, Sweet: 0.35, Fruit: 0.35},
	},
	{
		ID: "W010", Brand: "Yamazaki", Name: "Yamazaki 12", Price: 25000, Amount: "700ml",
		Category: "Whiskey", Region: "Japan", Subcategory: "Single Malt",
		TastingNote:  "ミズナラ樽の白檀と熟した果実",
		Aliases:      []string{"yamazaki", "山崎"},
		TasteProfile: TasteScores{Body: 0.6, Smoke: 0.15, Sweet: 0.65, Fruit: 0.75},
	},
	{
		ID: "W011", Brand: "Hakushu", Name: "Hakushu 12", Price: 23000, Amount: "700ml",
		Category: "Whiskey", Region: "Japan", Subcategory: "Single Malt",
		TastingNote:  "若葉と微かなスモーク、清涼感",
		Aliases:      []string{"hakushu", "白州"},
		TasteProfile: TasteScores{Body: 0.45, Smoke: 0.3, Sweet: 0.5, Fruit: 0.65},
	},
	{
		ID: "W012", Brand: "Hibiki", Name: "Hibiki Japanese Harmony", Price: 13000, Amount: "700ml",
		Category: "Whiskey", Region: "Japan", Subcategory: "Blended",
		TastingNote:  "蜂蜜とオレンジピール、調和のとれた余韻",
		Aliases:      []string{"hibiki", "響"},
		TasteProfile: TasteScores{Body: 0.5, Smoke: 0.1, Sweet: 0.7, Fruit: 0.7},
	},
	{
		ID: "W013", Brand: "Nikka", Name: "Nikka From The Barrel", Price: 4200, Amount: "500ml",
		Category: "Whiskey", Region: "Japan", Subcategory: "Blended",
		TastingNote:  "高アルコールの凝縮感、カラメルとスパイス",
		Aliases:      []string{"nikka", "ニッカ", "from the barrel"},
		TasteProfile: TasteScores{Body: 0.75, Smoke: 0.25, Sweet: 0.6, Fruit: 0.5},
	},
	{
		ID: "W014", Brand: "Maker's Mark", Name: "Maker's Mark", Price: 3400, Amount: "700ml",
		Category: "Whiskey", Region: "Kentucky", Subcategory: "Bourbon",
		TastingNote:  "小麦由来の柔らかな甘み、バニラ",
		Aliases:      []string{"maker's mark", "makers mark", "メーカーズマーク"},
		TasteProfile: TasteScores{Body: 0.5, Smoke: 0.05, Sweet: 0.8, Fruit: 0.45},
	},
	{
		ID: "W015", Brand: "Chivas Regal", Name: "Chivas Regal 12", Price: 4000, Amount: "700ml",
		Category: "Whiskey", Region: "Scotland", Subcategory: "Blended",
		TastingNote:  "蜂蜜とバニラ、優しいフルーツ",
		Aliases:      []string{"chivas", "シーバスリーガル"},
		TasteProfile: TasteScores{Body: 0.4, Smoke: 0.1, Sweet: 0.7, Fruit: 0.6},
	},
}
