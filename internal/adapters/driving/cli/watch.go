package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/core/services"
)

var (
	watchConnector string
	watchCalendar  string
	watchCallback  string
	unwatchChannel string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open a push-notification channel for event changes",
	RunE:  runWatch,
}

var unwatchCmd = &cobra.Command{
	Use:   "unwatch",
	Short: "Close a push-notification channel",
	RunE:  runUnwatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchConnector, "connector", "c", "", "connector to query (required)")
	watchCmd.Flags().StringVar(&watchCalendar, "calendar", "", "calendar id")
	watchCmd.Flags().StringVar(&watchCallback, "callback", "", "webhook URL for notifications (required)")
	_ = watchCmd.MarkFlagRequired("connector")
	_ = watchCmd.MarkFlagRequired("callback")

	unwatchCmd.Flags().StringVarP(&watchConnector, "connector", "c", "", "connector to query (required)")
	unwatchCmd.Flags().StringVar(&unwatchChannel, "channel", "", "channel id returned by watch (required)")
	_ = unwatchCmd.MarkFlagRequired("connector")
	_ = unwatchCmd.MarkFlagRequired("channel")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(unwatchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := requireSetup(); err != nil {
		return err
	}

	auth, err := loadAuth(watchConnector)
	if err != nil {
		return err
	}

	q := domain.Query{CalendarID: watchCalendar, CallbackURL: watchCallback}
	result, err := registry.Dispatch(cmd.Context(), watchConnector, services.MethodWatchEvents, auth, q)
	if err != nil {
		return err
	}

	channel, ok := result.(*domain.WatchChannel)
	if !ok {
		return fmt.Errorf("unexpected result type %T", result)
	}

	cmd.Printf("Watching. Channel: %s\n", channel.ChannelID)
	cmd.Println("Stop with: unical unwatch --connector", watchConnector, "--channel", channel.ChannelID)
	return nil
}

func runUnwatch(cmd *cobra.Command, _ []string) error {
	if err := requireSetup(); err != nil {
		return err
	}

	auth, err := loadAuth(watchConnector)
	if err != nil {
		return err
	}

	q := domain.Query{ChannelID: unwatchChannel}
	if _, err := registry.Dispatch(cmd.Context(), watchConnector, services.MethodStopWatch, auth, q); err != nil {
		return err
	}

	cmd.Printf("Channel closed: %s\n", unwatchChannel)
	return nil
}
