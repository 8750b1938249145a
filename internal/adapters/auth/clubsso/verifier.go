package clubsso

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dog-show-club/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.Verifier contra el SSO del club.
// Se instancia desde main/router cuando hay base_url configurada.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.IntrospectSession(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("clubsso verify failed: %w", err)
	}

	if strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, errors.New("clubsso claims missing user id")
	}
	return claims, nil
}
