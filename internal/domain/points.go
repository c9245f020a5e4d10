package domain

// Points awarded per published item.
const (
	PointsPerApp   = 50
	PointsPerEvent = 30
)

// PointsBreakdown decomposes a user's stored total into app points, event
// points and a quiz remainder. The remainder is derived by subtraction and
// may be negative when the stored total drifted from published content; it
// is surfaced as-is rather than clamped.
type PointsBreakdown struct {
	Total       int `json:"total"`
	AppCount    int `json:"app_count"`
	EventCount  int `json:"event_count"`
	AppPoints   int `json:"app_points"`
	EventPoints int `json:"event_points"`
	QuizPoints  int `json:"quiz_points"`
}

func DecomposePoints(total, appCount, eventCount int) PointsBreakdown {
	appPoints := appCount * PointsPerApp
	eventPoints := eventCount * PointsPerEvent
	return PointsBreakdown{
		Total:       total,
		AppCount:    appCount,
		EventCount:  eventCount,
		AppPoints:   appPoints,
		EventPoints: eventPoints,
		QuizPoints:  total - appPoints - eventPoints,
	}
}
