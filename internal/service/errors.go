package service

import "errors"

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrItemUnavailable = errors.New("item is not available")
	ErrRentalNotFound  = errors.New("no active rental with that ID")
	ErrDuplicateID     = errors.New("ID already in use")
)
