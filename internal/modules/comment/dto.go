package comment

type CreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

type UpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}
