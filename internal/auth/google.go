package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
)

const googleIssuer = "https://accounts.google.com"

// GoogleVerifier validates Google ID tokens via OIDC discovery.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("create OIDC provider: %w", err)
	}
	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*FederatedClaims, error) {
	// Peek the issuer without verifying so foreign tokens are rejected
	// before the network round trip to Google.
	if err := checkIssuer(rawToken); err != nil {
		return nil, err
	}

	idToken, err := g.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("verify ID token: %w", err)
	}

	var claims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	if claims.Sub == "" {
		return nil, errors.New("subject claim missing")
	}

	return &FederatedClaims{
		Subject: claims.Sub,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

func checkIssuer(rawToken string) error {
	token, _, err := new(jwt.Parser).ParseUnverified(rawToken, jwt.MapClaims{})
	if err != nil {
		return fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid token claims")
	}
	iss, _ := claims["iss"].(string)
	if iss != googleIssuer && iss != "accounts.google.com" {
		return fmt.Errorf("unexpected issuer %q", iss)
	}
	return nil
}
