package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	clientapi "github.com/iudanet/socialhub/internal/client/api"
	"github.com/iudanet/socialhub/internal/client/storage"
)

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	session, err := c.session(ctx)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			c.io.Println("Not logged in.")
			return nil
		}
		return err
	}

	// logout требует действующий access token
	if session.AccessExpired(c.now()) {
		if err := c.refresh(ctx, session); err != nil {
			if clientapi.IsStatus(err, http.StatusUnauthorized) {
				c.io.Println("Session already expired on server.")
				c.io.Println("Your local session has been deleted.")
				return nil
			}
			return fmt.Errorf("logout failed: %w", err)
		}
	}

	err = c.apiClient.Logout(ctx, session.AccessToken, session.RefreshToken)
	if err != nil && !clientapi.IsStatus(err, http.StatusUnauthorized) {
		return fmt.Errorf("logout failed: %w", err)
	}

	if err := c.store.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")

	return nil
}
