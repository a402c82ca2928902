package client

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// tokenResponse is the shape of the auth endpoints' success bodies. Older
// firmware returns a single "token" field instead of the pair; it is treated
// as an access token with no refresh token, which leaves refresh permanently
// unavailable for the session.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Token        string `json:"token"`
}

func (t *tokenResponse) access() string {
	if t.AccessToken != "" {
		return t.AccessToken
	}
	return t.Token
}

// Login authenticates against the appliance and stores the returned token
// pair. Login is attempted exactly once; the retry policy exempts the auth
// namespace.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var result tokenResponse
	payload := map[string]string{"username": username, "password": password}
	if err := c.Post(ctx, "/auth/login", payload, &result); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	access := result.access()
	if access == "" {
		return fmt.Errorf("login response carried no access token")
	}
	if err := c.session.SetTokens(access, result.RefreshToken); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("Logged in successfully")
	return nil
}

// Logout asks the appliance to revoke the session and clears the local
// credentials. Revocation is best-effort: logout must always succeed
// client-side, so a failed request is logged and swallowed.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.Post(ctx, "/auth/logout", nil, nil); err != nil && !IsCanceled(err) {
		log.Warn().Err(err).Msg("Logout request failed; clearing local session anyway")
	}
	return c.session.Clear()
}

// Me returns the account the session is authenticated as.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.Get(ctx, "/auth/me", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ChangePassword changes the account password. The response carries only a
// new access token; the stored refresh token stays valid and is kept.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	payload := map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	}
	var result tokenResponse
	if err := c.Post(ctx, "/auth/password", payload, &result); err != nil {
		return fmt.Errorf("password change failed: %w", err)
	}
	if access := result.access(); access != "" {
		if err := c.session.SetTokens(access, result.RefreshToken); err != nil {
			return err
		}
	}
	log.Info().Msg("Password changed successfully")
	return nil
}
