package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/socialhub/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.getPassword("Password: ", false)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	resp, err := c.apiClient.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	session, err := c.saveAuth(ctx, resp)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", session.Username)
	if session.AccessExpiresAt > 0 {
		c.io.Printf("Access token expires in: %s\n", c.remaining(session.AccessExpiresAt))
	}
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}
