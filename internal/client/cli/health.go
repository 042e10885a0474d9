package cli

import "context"

func (c *Cli) runHealth(ctx context.Context) error {
	resp, err := c.apiClient.Health(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("Server: %s\n", c.serverURL)
	c.io.Printf("Status: %s\n", resp.Status)
	if resp.Version != "" {
		c.io.Printf("Version: %s\n", resp.Version)
	}
	return nil
}
