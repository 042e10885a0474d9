package cli

import (
	"context"
	"fmt"
	"net/http"

	clientapi "github.com/iudanet/socialhub/internal/client/api"
	"github.com/iudanet/socialhub/internal/client/storage"
)

func (c *Cli) runRefresh(ctx context.Context) error {
	session, err := c.session(ctx)
	if err != nil {
		return err
	}

	if err := c.refresh(ctx, session); err != nil {
		return err
	}

	c.io.Println("✓ Access token refreshed")
	c.io.Printf("Expires in: %s\n", c.remaining(session.AccessExpiresAt))
	return nil
}

// refresh обновляет access token в session и сохраняет ее.
// Отвергнутый сервером refresh token удаляет локальную сессию.
func (c *Cli) refresh(ctx context.Context, session *storage.Session) error {
	resp, err := c.apiClient.Refresh(ctx, session.RefreshToken)
	if err != nil {
		if clientapi.IsStatus(err, http.StatusUnauthorized) {
			_ = c.store.DeleteSession(ctx)
			return fmt.Errorf("session expired, please login again: %w", err)
		}
		return err
	}

	session.AccessToken = resp.AccessToken
	session.AccessExpiresAt = accessExpiry(resp.AccessToken)
	if err := c.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
