package main // Entry point package

import (
	"context"
	"log" // Logging library
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/seatplan/internal/config"
)

var (
	cfg       config.Config
	storePath string // overrides STORE_PATH
)

var rootCmd = &cobra.Command{
	Use:   "seatplan",
	Short: "Plan and run the seating of an event",
	Long: `seatplan keeps the floors, seats and guests of one event in a single
SQLite store file and serves them to the planner UI over a local API.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if storePath == "" {
			storePath = cfg.StorePath
		}
	},
}

func init() {
	cfg = config.Load()
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "path of the store file (default $STORE_PATH)")
	rootCmd.AddCommand(initCmd, checkCmd, serveCmd, consumeCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatalf("seatplan: %v", err)
	}
}
