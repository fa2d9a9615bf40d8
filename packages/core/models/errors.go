package models

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateNickname = errors.New("nickname already exists")
	ErrPlayerNotFound    = errors.New("player not found")
)
