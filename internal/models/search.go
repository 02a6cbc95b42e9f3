package models

type StatisticsResponse struct {
	TotalQuestions int64            `json:"total_questions"`
	ByDifficulty   map[string]int64 `json:"by_difficulty"`
	ByCategory     map[string]int64 `json:"by_category"`
	BySource       map[string]int64 `json:"by_source"`
}
