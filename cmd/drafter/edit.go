package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gosimple/slug"
	"github.com/mark3labs/drafter/internal/config"
	"github.com/mark3labs/drafter/internal/hooks"
	"github.com/mark3labs/drafter/internal/logger"
	"github.com/mark3labs/drafter/internal/mcpserver"
	"github.com/mark3labs/drafter/internal/nats"
	"github.com/mark3labs/drafter/internal/session"
	"github.com/spf13/cobra"
)

var editFlags struct {
	name    string
	dataDir string
	reset   bool
}

var editCmd = &cobra.Command{
	Use:   "edit [NAME]",
	Short: "Open a persisted editing session and serve its MCP tools",
	Long: `Open (or create) an editing session. The session's content history and
chat messages are replayed from the embedded NATS event log, then an MCP
tool server is started so an AI agent can read, edit, commit, and diff the
content. Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editFlags.name, "name", "n", "", "Session name (default: \"default\")")
	editCmd.Flags().StringVar(&editFlags.dataDir, "data-dir", "", "Data directory for NATS storage (default from config)")
	editCmd.Flags().BoolVar(&editFlags.reset, "reset", false, "Reset session data before starting (clears all events for this session)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.Default.SetLevel(level)
	}

	name := editFlags.name
	if name == "" && len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		name = "default"
	}
	// NATS subjects are dot-separated; slugging keeps the name token-safe.
	name = slug.Make(name)
	if name == "" {
		return fmt.Errorf("invalid session name")
	}

	dataDir := editFlags.dataDir
	if dataDir == "" {
		dataDir = cfg.DataDir
	}

	ns, err := nats.StartEmbeddedNATS(dataDir)
	if err != nil {
		return fmt.Errorf("starting embedded NATS: %w", err)
	}
	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		ns.Shutdown()
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer func() {
		if err := nats.Shutdown(nc, ns); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		return fmt.Errorf("creating JetStream context: %w", err)
	}
	ctx := cmd.Context()
	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		return fmt.Errorf("setting up stream: %w", err)
	}

	store := session.NewStore(js, stream)

	if editFlags.reset {
		if err := store.ResetSession(ctx, name); err != nil {
			return err
		}
		fmt.Printf("Session %q reset\n", name)
	}

	sess, err := store.LoadSession(ctx, name, cfg.HistoryLimit)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	hooksCfg, err := hooks.LoadConfig(workDir)
	if err != nil {
		return err
	}

	srv := mcpserver.New(store, sess, workDir, hooksCfg)
	srv.SetAutoCommit(cfg.AutoCommit)
	if _, err := srv.Start(ctx); err != nil {
		return fmt.Errorf("starting MCP server: %w", err)
	}
	defer func() {
		if err := srv.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error stopping MCP server: %v\n", err)
		}
	}()

	view := sess.History()
	fmt.Printf("Session:  %s\n", name)
	if cfg.Model != "" {
		fmt.Printf("Model:    %s\n", cfg.Model)
	}
	fmt.Printf("Content:  %d bytes (past=%d, future=%d)\n", len(view.Content), view.PastLen, view.FutureLen)
	fmt.Printf("Messages: %d\n", len(sess.Messages()))
	fmt.Printf("MCP:      %s\n", srv.URL())
	fmt.Println("Press Ctrl-C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
		fmt.Println("\nShutting down gracefully...")
	case <-ctx.Done():
	}

	return nil
}
