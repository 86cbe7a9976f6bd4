package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/drafter/internal/config"
	"github.com/mark3labs/drafter/internal/nats"
	"github.com/mark3labs/drafter/internal/session"
	"github.com/spf13/cobra"
)

var sessionsFlags struct {
	dataDir string
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions recorded in the event log",
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().StringVar(&sessionsFlags.dataDir, "data-dir", "", "Data directory for NATS storage (default from config)")
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dataDir := sessionsFlags.dataDir
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
	names, err := store.ListSessions(ctx)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
