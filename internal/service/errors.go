package service

import "errors"

// Sentinel errors handlers translate into HTTP responses. Anything not in
// this list is a persistence failure and surfaces as a generic 500.
var (
	// ErrUnauthenticated means no user identity accompanied the call.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when signing up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrOtpInvalid means the verification code was wrong or no signup is pending.
	ErrOtpInvalid = errors.New("invalid verification code")

	// ErrOtpExpired means the pending signup's code is past its expiry.
	ErrOtpExpired = errors.New("verification code expired")

	// ErrUploadRejected is a client-side pre-check failure (content type or
	// size); the storage backend was never contacted.
	ErrUploadRejected = errors.New("upload rejected")
)
