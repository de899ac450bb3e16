package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/copydesk/internal/billing"
	"github.com/jonathan/copydesk/internal/brief"
	"github.com/jonathan/copydesk/internal/observability"
	"github.com/jonathan/copydesk/internal/server"
	"github.com/jonathan/copydesk/internal/server/ratelimit"
	"github.com/jonathan/copydesk/internal/types"
	"github.com/jonathan/copydesk/internal/voice"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start an HTTP server for the marketing site, the dashboard and the voice, brief and billing API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}
	e := s.env

	shutdownTracing, err := observability.SetupTracing(ctx, "copydesk")
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("[serve] Tracing shutdown failed: %v", err)
		}
	}()

	client, err := s.newLLMClient(ctx)
	if err != nil {
		return err
	}
	if client == nil {
		log.Printf("[serve] No LLM API key set; voice analysis will report the service as not configured")
	} else {
		defer func() { _ = client.Close() }()
	}

	deps := server.Deps{
		Voice:   voice.NewService(client),
		Briefs:  brief.NewLogSubmitter(),
		Limiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}
	if e.BillingEnabled() {
		stripe, err := billing.NewStripe(e.StripeConfig())
		if err != nil {
			return fmt.Errorf("failed to configure Stripe: %w", err)
		}
		deps.Billing = stripe
	} else {
		log.Printf("[serve] STRIPE_SECRET_KEY not set; checkout and portal are disabled")
	}

	port := e.Port
	if servePort != 0 {
		port = servePort
	}
	srv, err := server.New(server.Config{
		Port:           port,
		AllowedOrigins: e.AllowedOrigins,
		CustomerID:     e.DashboardCustomerID,
		Plan:           types.PlanID(e.DashboardPlan),
	}, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if s.Verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s, billing: %t, port: %d\n", e.LLMProvider, e.BillingEnabled(), port)
	}
	return srv.Start(ctx)
}
