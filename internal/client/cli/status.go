package cli

import (
	"context"
	"errors"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	session, err := c.session(ctx)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'socialhub login' to authenticate.")
			return nil
		}
		return err
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Server: %s\n", session.ServerURL)
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Printf("Email: %s\n", session.Email)

	if session.AccessExpiresAt == 0 {
		return nil
	}

	expiresAt := time.Unix(session.AccessExpiresAt, 0).UTC()
	c.io.Printf("Access token expires: %s\n", expiresAt.Format(time.RFC3339))
	if session.AccessExpired(c.now()) {
		c.io.Println("⚠️  Access token has expired. Run 'socialhub refresh'.")
	} else {
		c.io.Printf("Time remaining: %s\n", c.remaining(session.AccessExpiresAt))
	}

	return nil
}

func (c *Cli) remaining(unix int64) time.Duration {
	return time.Unix(unix, 0).Sub(c.now()).Round(time.Second)
}
