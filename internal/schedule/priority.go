package schedule

// 前端把 sortOrder 划分为高/中/低三档的固定阈值
const (
	HighPriorityMax   int32 = 1000
	MediumPriorityMax int32 = 5000
)

func PriorityTier(sortOrder int32) string {
	switch {
	case sortOrder <= HighPriorityMax:
		return "high"
	case sortOrder <= MediumPriorityMax:
		return "medium"
	default:
		return "low"
	}
}
