package photo

import "errors"

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrTooManyTags   = errors.New("a photo can carry at most 5 tags")
	ErrEmptyUpload   = errors.New("upload contains no file")
)
