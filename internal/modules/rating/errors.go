package rating

import "errors"

var (
	ErrRatingNotFound = errors.New("rating not found")
	ErrPhotoNotFound  = errors.New("photo not found")
	ErrOwnPhoto       = errors.New("cannot rate your own photo")
	ErrAlreadyRated   = errors.New("photo already rated by this user")
	ErrValueOutOfRange = errors.New("rating must be between 1 and 5")
)
