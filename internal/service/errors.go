package service

import "errors"

// 业务前置条件错误，controller 统一映射为 4xx
var (
	ErrOwnerRequired   = errors.New("user id is required")
	ErrOwnerMismatch   = errors.New("user id does not match the signed-in session")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailInUse      = errors.New("email already in use by another agency")
	ErrMissingField    = errors.New("missing required fields")
	ErrListingNotFound = errors.New("listing not found")
)

// ErrInvalidUpload 上传文件数量/大小/类型不合法
var ErrInvalidUpload = errors.New("invalid upload")
