package jwt

import "errors"

var (
	// ErrMissingSecret is returned when a service is created without a
	// signing secret.
	ErrMissingSecret = errors.New("jwt: missing signing secret")

	// ErrMalformedToken is returned for tokens that are not three
	// base64url segments.
	ErrMalformedToken = errors.New("jwt: malformed token")

	// ErrInvalidSignature is returned when the signature does not match.
	ErrInvalidSignature = errors.New("jwt: invalid signature")

	// ErrUnexpectedAlgorithm is returned for any algorithm but HS256.
	ErrUnexpectedAlgorithm = errors.New("jwt: unexpected signing algorithm")

	// ErrTokenExpired is returned when the exp claim is in the past.
	ErrTokenExpired = errors.New("jwt: token expired")

	// ErrTokenNotYetValid is returned when the nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("jwt: token not yet valid")
)
