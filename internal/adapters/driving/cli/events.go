package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/core/services"
)

var (
	eventsConnector  string
	eventsCalendar   string
	eventsID         string
	eventsFrom       string
	eventsTo         string
	eventsUpdated    string
	eventsTimeZone   string
	eventsPageToken  string
	eventsMaxResults int64
	eventsRaw        bool
	eventsJSON       bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Query events on a calendar",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events, or fetch one with --id",
	RunE:  runEventsList,
}

var eventsNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next upcoming event",
	RunE:  runEventsNext,
}

func init() {
	for _, c := range []*cobra.Command{eventsListCmd, eventsNextCmd} {
		c.Flags().StringVarP(&eventsConnector, "connector", "c", "", "connector to query (required)")
		c.Flags().StringVar(&eventsCalendar, "calendar", "", "calendar id")
		_ = c.MarkFlagRequired("connector")
	}

	eventsListCmd.Flags().StringVar(&eventsID, "id", "", "fetch a single event by id")
	eventsListCmd.Flags().StringVar(&eventsFrom, "from", "", "window start (RFC 3339 or YYYY-MM-DD)")
	eventsListCmd.Flags().StringVar(&eventsTo, "to", "", "window end (RFC 3339 or YYYY-MM-DD)")
	eventsListCmd.Flags().StringVar(&eventsUpdated, "updated-since", "", "only events modified after this instant")
	eventsListCmd.Flags().StringVar(&eventsTimeZone, "time-zone", "", "IANA zone for date boundaries")
	eventsListCmd.Flags().StringVar(&eventsPageToken, "page-token", "", "cursor from a previous page")
	eventsListCmd.Flags().Int64Var(&eventsMaxResults, "max-results", 0, "page size (provider default when 0)")
	eventsListCmd.Flags().BoolVar(&eventsRaw, "raw", false, "return the provider payload unmapped")
	eventsListCmd.Flags().BoolVar(&eventsJSON, "json", false, "output as JSON")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsNextCmd)
	rootCmd.AddCommand(eventsCmd)
}

func runEventsList(cmd *cobra.Command, _ []string) error {
	if err := requireSetup(); err != nil {
		return err
	}

	auth, err := loadAuth(eventsConnector)
	if err != nil {
		return err
	}

	from, err := parseTimeFlag("from", eventsFrom)
	if err != nil {
		return err
	}
	to, err := parseTimeFlag("to", eventsTo)
	if err != nil {
		return err
	}
	updated, err := parseTimeFlag("updated-since", eventsUpdated)
	if err != nil {
		return err
	}

	q := domain.Query{
		CalendarID:   eventsCalendar,
		EventID:      eventsID,
		From:         from,
		To:           to,
		LastModified: updated,
		TimeZone:     eventsTimeZone,
		PageToken:    eventsPageToken,
		MaxResults:   eventsMaxResults,
		Raw:          eventsRaw,
	}

	if eventsID != "" {
		result, err := registry.Dispatch(cmd.Context(), eventsConnector, services.MethodGetEvent, auth, q)
		if err != nil {
			return err
		}
		if res, ok := result.(*domain.EventResult); ok && eventsRaw {
			return outputJSON(cmd, res.Native)
		}
		return outputJSON(cmd, result)
	}

	result, err := registry.Dispatch(cmd.Context(), eventsConnector, services.MethodListEvents, auth, q)
	if err != nil {
		return err
	}

	page, ok := result.(*domain.EventPage)
	if !ok {
		return fmt.Errorf("unexpected result type %T", result)
	}

	if eventsRaw {
		return outputJSON(cmd, struct {
			Events        any    `json:"events"`
			NextPageToken string `json:"next_page_token,omitempty"`
		}{page.Native, page.NextPageToken})
	}
	if eventsJSON {
		return outputJSON(cmd, page)
	}
	return outputEventTable(cmd, page)
}

func runEventsNext(cmd *cobra.Command, _ []string) error {
	if err := requireSetup(); err != nil {
		return err
	}

	auth, err := loadAuth(eventsConnector)
	if err != nil {
		return err
	}

	q := domain.Query{CalendarID: eventsCalendar}
	result, err := registry.Dispatch(cmd.Context(), eventsConnector, services.MethodGetNextEvent, auth, q)
	if err != nil {
		return err
	}

	res, ok := result.(*domain.EventResult)
	if !ok {
		return fmt.Errorf("unexpected result type %T", result)
	}
	if res.Event == nil {
		cmd.Println("No upcoming events.")
		return nil
	}
	return outputJSON(cmd, res.Event)
}

func outputEventTable(cmd *cobra.Command, page *domain.EventPage) error {
	if len(page.Events) == 0 {
		cmd.Println("No events found.")
		return nil
	}

	cmd.Println("Events:")
	for i := range page.Events {
		e := &page.Events[i]
		when := ""
		if !e.Start.IsZero() {
			when = e.Start.Format(time.RFC3339)
		}
		flags := ""
		if e.Deleted {
			flags += " [deleted]"
		}
		if e.Recurring {
			flags += " [recurring]"
		}
		cmd.Printf("  %s  %s  %s%s\n", e.ID, when, e.Summary, flags)
		if e.Location != "" {
			cmd.Printf("      %s\n", e.Location)
		}
		if e.MeetingURL != "" {
			cmd.Printf("      %s\n", e.MeetingURL)
		}
	}
	if page.NextPageToken != "" {
		cmd.Printf("\nMore results: --page-token %q\n", page.NextPageToken)
	}
	return nil
}
