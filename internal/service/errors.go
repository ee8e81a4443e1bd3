package service

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")

	ErrInvalidInput     = errors.New("invalid input")
	ErrEmptyItems       = errors.New("empty items")
	ErrQuantityInvalid  = errors.New("quantity must be > 0")
	ErrInvalidAddress   = errors.New("invalid shipping address")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrCurrencyMismatch = errors.New("currency mismatch")

	ErrInvalidTransition = errors.New("invalid status transition")

	ErrTooManyRequests      = errors.New("too many requests")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrEmailAlreadyVerified = errors.New("email already verified")
)
