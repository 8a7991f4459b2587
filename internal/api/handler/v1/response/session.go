package response

type ScorePreviewResponse struct {
	SessionID uint `json:"session_id"`
	Score     int  `json:"score"`
}
