package request_models

type SaveTestResultRequest struct {
	TestType string         `json:"test_type" binding:"required"`
	Answers  map[string]int `json:"answers" binding:"required"`
}
