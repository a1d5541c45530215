package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	sessionRedisAddr string
	sessionChannel   string
	sessionCount     int
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect session activity",
}

var sessionWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print session sign-in and sign-out events as they are published",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		client := redis.NewClient(&redis.Options{Addr: sessionRedisAddr})
		defer client.Close()

		notifier := auth.NewNotifier(client, sessionChannel, logger.NewStructured("warn", "console"))
		events, unsubscribe, err := notifier.Subscribe(ctx)
		if err != nil {
			return err
		}
		defer unsubscribe()

		seen := 0
		for ev := range events {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", ev.OccurredAt.Format(time.RFC3339), ev.Type, ev.UserID)
			seen++
			if sessionCount > 0 && seen >= sessionCount {
				return nil
			}
		}
		return nil
	},
}

func init() {
	sessionWatchCmd.Flags().StringVar(&sessionRedisAddr, "redis", "localhost:6379", "redis address")
	sessionWatchCmd.Flags().StringVar(&sessionChannel, "channel", "session-events", "session event channel")
	sessionWatchCmd.Flags().IntVar(&sessionCount, "count", 0, "exit after this many events (0 watches until interrupted)")
	sessionCmd.AddCommand(sessionWatchCmd)
}
