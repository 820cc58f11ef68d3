package taste

// Profile 口味分析結果，由座標決定、不帶任何狀態
type Profile struct {
	Quadrant        string          `json:"quadrant"`
	Characteristics Characteristics `json:"characteristics"`
}

// Characteristics 由座標推導的特徵值（0~1）
type Characteristics struct {
	Sweetness       float64 `json:"sweetness"`
	Smokiness       float64 `json:"smokiness"`
	Richness        float64 `json:"richness"`
	Complexity      float64 `json:"complexity"`
	Approachability float64 `json:"approachability"`
}

// 四個象限名稱：X 為酒體（輕→重）、Y 為風味（果香→煙燻）
const (
	QuadrantLightFruity = "light & fruity"
	QuadrantHeavyFruity = "heavy & fruity"
	QuadrantLightSmoky  = "light & smoky"
	QuadrantHeavySmoky  = "heavy & smoky"
)

const midpoint = 0.5

// 特徵值下限，避免推導出完全為零的甜度或親和度
const (
	sweetnessFloor       = 0.2
	approachabilityFloor = 0.1
)

// Analyze 將口味座標轉為 Profile。缺少的座標以中間值 0.5 代入，
// 因此對任何輸入都有結果，不存在錯誤情況。
func Analyze(tasteX, tasteY *float64) Profile {
	x := normalize(tasteX)
	y := normalize(tasteY)

	return Profile{
		Quadrant: quadrant(x, y),
		Characteristics: Characteristics{
			Sweetness:       max(sweetnessFloor, 1-y),
			Smokiness:       y,
			Richness:        x,
			Complexity:      (x + y) / 2,
			Approachability: max(approachabilityFloor, 1-x),
		},
	}
}

// normalize 把座標統一到 0~1。前端歷史版本用過 0~300 的刻度，
// 大於 1 的值一律視為該刻度換算。
func normalize(v *float64) float64 {
	if v == nil {
		return midpoint
	}
	val := *v
	if val > 1 {
		val = val / 300
	}
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}

// quadrant 象限判定，邊界值（0.5）落在重酒體／煙燻側
func quadrant(x, y float64) string {
	switch {
	case x < midpoint && y < midpoint:
		return QuadrantLightFruity
	case x >= midpoint && y < midpoint:
		return QuadrantHeavyFruity
	case x < midpoint && y >= midpoint:
		return QuadrantLightSmoky
	default:
		return QuadrantHeavySmoky
	}
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
