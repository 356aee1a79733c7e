package rating

type RateRequest struct {
	Value int `json:"value" binding:"required,min=1,max=5"`
}
