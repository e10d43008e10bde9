package domain

import "errors"

// 业务错误集中定义，handler 层统一映射到响应码
var (
	ErrValidation         = errors.New("invalid input")
	ErrDuplicateIdentity  = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyLiked       = errors.New("already liked")
)
