package request_models

type CheckInRequest struct {
	Status           string   `json:"status" binding:"required"`
	Date             string   `json:"date"` // YYYY-MM-DD, defaults to today
	Challenges       []string `json:"challenges"`
	Motivations      []string `json:"motivations"`
	SabotagePatterns []string `json:"sabotage_patterns"`
	TimeOfDay        string   `json:"time_of_day"`
	EnergyLevel      int      `json:"energy_level"`
	Satisfaction     int      `json:"satisfaction"`
	Mood             int      `json:"mood"`
	Reflection       string   `json:"reflection" binding:"max=2000"`
}
