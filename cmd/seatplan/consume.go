package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/seatplan/internal/queue"
)

var consumeLogDir string

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Record seat.assigned events to an assignment log",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.AMQPURL == "" {
			return fmt.Errorf("RABBITMQ_URL or AMQP_URL is required")
		}
		err := queue.StartAssignmentConsumer(cmd.Context(), cfg.AMQPURL, consumeLogDir)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	consumeCmd.Flags().StringVar(&consumeLogDir, "log-dir", ".", "directory the assignment log is written to")
}
