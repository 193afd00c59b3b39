package library

import "errors"

var (
	// ErrRepositoryRequired is returned when a required repository is not provided.
	ErrRepositoryRequired = errors.New("repository required")

	// ErrNotPremium is returned when unlocking a template that is free.
	ErrNotPremium = errors.New("template does not require payment")

	// ErrPaymentFailed is returned when the payment gateway rejects a payment.
	ErrPaymentFailed = errors.New("payment failed")

	// ErrTemplateLocked is returned when exporting a premium template that was never unlocked.
	ErrTemplateLocked = errors.New("template is locked")

	// ErrReferenceRequired is returned when a payment has no transaction reference.
	ErrReferenceRequired = errors.New("payment reference required")
)
