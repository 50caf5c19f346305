package response_models

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type ExecutionBalance struct {
	Completed int `json:"completed"`
	Partial   int `json:"partial"`
	Missed    int `json:"missed"`
}

type Report struct {
	TotalCheckIns       int              `json:"total_check_ins"`
	Balance             ExecutionBalance `json:"balance"`
	MissedByTimeOfDay   map[string]int   `json:"missed_by_time_of_day"`
	TopSabotage         []TagCount       `json:"top_sabotage"`
	Motivations         []TagCount       `json:"motivations"`
	TopChallenges       []TagCount       `json:"top_challenges"`
	SuccessRate         int              `json:"success_rate"`
	AverageEnergy       float64          `json:"average_energy"`
	AverageSatisfaction float64          `json:"average_satisfaction"`
	AverageMood         float64          `json:"average_mood"`
}
