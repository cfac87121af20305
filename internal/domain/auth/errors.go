package auth

import "errors"

// ErrMissingCredential indicates the request carried no bearer token.
var ErrMissingCredential = errors.New("authentication token is missing")

// ErrInvalidCredential indicates the token failed verification (bad signature,
// malformed, wrong claims).
var ErrInvalidCredential = errors.New("invalid authentication token")

// ErrExpiredCredential indicates a well-formed token past its expiry. Kept
// separate from ErrInvalidCredential so clients can prompt re-authentication.
var ErrExpiredCredential = errors.New("authentication token expired")

// ErrVerifierUnavailable indicates the identity provider itself failed.
var ErrVerifierUnavailable = errors.New("credential verifier unavailable")
