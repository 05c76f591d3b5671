package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSClientInterface verifies student bearer tokens. The concrete client
// talks to the identity provider's JWKS endpoints; tests substitute a mock.
type JWKSClientInterface interface {
	// ValidateToken checks a JWT and returns its claims. Expired tokens,
	// bad signatures, and unknown issuers are all errors.
	ValidateToken(tokenString string) (*Claims, error)
	// Close releases any resources held by the client.
	Close()
}

// JWKSConfig configures token verification.
type JWKSConfig struct {
	// EnableVerification toggles signature checks. Local development runs
	// with it off so tokens can be minted without the identity provider.
	EnableVerification bool
	// JWKSEndpoints maps accepted issuer URLs to their JWKS URLs. A token
	// whose iss is not a key here is rejected.
	JWKSEndpoints map[string]string
}

// JWKSClient resolves signing keys from the identity provider's published
// key sets, one keyfunc per accepted issuer.
type JWKSClient struct {
	keyfuncs map[string]keyfunc.Keyfunc
	config   *JWKSConfig
}

// NewJWKSClient builds a client and, when verification is on, fetches the
// key set of every configured issuer up front so startup fails fast on a
// bad endpoint.
func NewJWKSClient(config *JWKSConfig) (*JWKSClient, error) {
	client := &JWKSClient{
		keyfuncs: make(map[string]keyfunc.Keyfunc),
		config:   config,
	}

	if !config.EnableVerification {
		return client, nil
	}

	for issuer, jwksURL := range config.JWKSEndpoints {
		jwks, err := keyfunc.NewDefaultCtx(context.Background(), []string{jwksURL})
		if err != nil {
			return nil, fmt.Errorf("failed to create JWKS client for %s: %w", issuer, err)
		}
		client.keyfuncs[issuer] = jwks
	}

	return client, nil
}

// ValidateToken parses and, unless verification is disabled, verifies the
// token's RS256 signature against the issuer's key set.
func (c *JWKSClient) ValidateToken(tokenString string) (*Claims, error) {
	if !c.config.EnableVerification {
		return c.parseUnverifiedToken(tokenString)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return nil, errors.New("invalid claims type")
		}

		jwks, exists := c.keyfuncs[claims.Issuer]
		if !exists {
			return nil, fmt.Errorf("unauthorized issuer: %s", claims.Issuer)
		}

		return jwks.KeyfuncCtx(context.Background())(token)
	})

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}

	return claims, nil
}

// parseUnverifiedToken extracts claims without checking the signature.
// Development mode only.
func (c *JWKSClient) parseUnverifiedToken(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, _, err := parser.ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}

	return claims, nil
}

// Close is a no-op; keyfunc v3 needs no explicit cleanup.
func (c *JWKSClient) Close() {}

var _ JWKSClientInterface = (*JWKSClient)(nil)
