package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("not signed in")
	ErrValidation      = errors.New("request rejected by validation")
	ErrRemoteRejected  = errors.New("request rejected by remote service")
	ErrNotFound        = errors.New("not found")
	ErrNetwork         = errors.New("network failure")
	ErrCheckoutFailed  = errors.New("checkout failed")
)
