package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrManagerRoleRequired = errors.New("manager role required")
)
