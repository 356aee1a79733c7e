package photo

type UpdateDescriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

type SetTagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

type ResizeRequest struct {
	Width  int `json:"width" binding:"required,min=1,max=4096"`
	Height int `json:"height" binding:"required,min=1,max=4096"`
}

type FilterRequest struct {
	Filter string `json:"filter" binding:"required"`
}
