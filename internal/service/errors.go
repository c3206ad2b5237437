package service

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrItemNotFound   = errors.New("item not found")
	ErrItemExists     = errors.New("item already exists")
)
