package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrPhotoNotFound   = errors.New("photo not found")
)
