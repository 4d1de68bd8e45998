package model

import "errors"

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	ErrInternalServerMessage     = "internal server error"
	ErrOrderNotFoundMessage      = "order not found"
	ErrOrdersNotFoundMessage     = "no orders found"
	ErrUnknownActionMessage      = "unknown action"
	ErrOrderTitleRequiredMessage = "order title is required"
	ErrOrderPagesRequiredMessage = "order pages must be positive"
)

var (
	ErrOrderNotFound      = errors.New(ErrOrderNotFoundMessage)
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnknownCollection  = errors.New("unknown collection")
	ErrSyncStopped        = errors.New("background sync stopped")
	ErrSnapshotUnreadable = errors.New("snapshot response unreadable")
)
