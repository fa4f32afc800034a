package httpdto

type EstimateRequest struct {
	Make      string `json:"make" binding:"required"`
	Model     string `json:"model" binding:"required"`
	Year      int    `json:"year" binding:"required"`
	Mileage   int    `json:"mileage"`
	Condition string `json:"condition"`
}
