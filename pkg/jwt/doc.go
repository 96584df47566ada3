// Package jwt signs and verifies HS256 access tokens.
//
// The identity provider issues tokens signed with a per-project shared
// secret, so verification happens locally without a network round trip.
// Only HS256 is accepted; a token claiming any other algorithm is
// rejected outright to rule out algorithm confusion.
package jwt
