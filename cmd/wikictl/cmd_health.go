package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/xiuxian-wiki/encyclopedia/apiclient"
)

const healthTimeout = 2 * time.Second

var healthURL string

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Exit 0 when the server's /api/health answers 200",
	Args:  cobra.NoArgs,
	RunE:  runHealthcheck,
}

func runHealthcheck(cmd *cobra.Command, args []string) error {
	base := healthURL
	if base == "" {
		base = cfg.APIBaseURL
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
	defer cancel()

	client := apiclient.New(base).WithHTTPClient(&http.Client{Timeout: healthTimeout})
	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("unhealthy: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
