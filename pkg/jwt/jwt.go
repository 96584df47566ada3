package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const algorithm = "HS256"

type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// AccessClaims is the claim set carried by identity-provider access
// tokens. Subject is the stable user id.
type AccessClaims struct {
	Subject   string `json:"sub,omitempty"`
	Email     string `json:"email,omitempty"`
	Audience  string `json:"aud,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Valid checks the temporal claims. Zero values are treated as unset.
func (c AccessClaims) Valid() error {
	now := time.Now().Unix()
	if c.ExpiresAt > 0 && now > c.ExpiresAt {
		return ErrTokenExpired
	}
	if c.NotBefore > 0 && now < c.NotBefore {
		return ErrTokenNotYetValid
	}
	return nil
}

// Service verifies and signs HS256 tokens with a shared secret.
type Service struct {
	secret []byte
}

// New creates a token service. The secret must be non-empty; it should
// be the project's JWT secret from the identity provider.
func New(secret string) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Service{secret: []byte(secret)}, nil
}

// Sign produces a signed token for the given claims. Mostly useful for
// tests and local tooling; production tokens come from the identity
// provider.
func (s *Service) Sign(claims any) (string, error) {
	headerJSON, err := json.Marshal(header{Type: "JWT", Algorithm: algorithm})
	if err != nil {
		return "", fmt.Errorf("jwt: marshal header: %w", err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("jwt: marshal claims: %w", err)
	}

	payload := encodeSegment(headerJSON) + "." + encodeSegment(claimsJSON)
	return payload + "." + s.signature(payload), nil
}

// Parse verifies a token's signature, algorithm, and temporal claims,
// then unmarshals the claim set into claims.
func (s *Service) Parse(tokenString string, claims any) error {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return ErrMalformedToken
	}

	payload := parts[0] + "." + parts[1]
	expected := s.signature(payload)
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return ErrInvalidSignature
	}

	headerJSON, err := decodeSegment(parts[0])
	if err != nil {
		return ErrMalformedToken
	}
	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return ErrMalformedToken
	}
	if h.Algorithm != algorithm {
		return ErrUnexpectedAlgorithm
	}

	claimsJSON, err := decodeSegment(parts[1])
	if err != nil {
		return ErrMalformedToken
	}
	if err := json.Unmarshal(claimsJSON, claims); err != nil {
		return ErrMalformedToken
	}

	if v, ok := claims.(interface{ Valid() error }); ok {
		return v.Valid()
	}
	return nil
}

func (s *Service) signature(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return encodeSegment(mac.Sum(nil))
}

func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
