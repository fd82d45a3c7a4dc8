package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/core/services"
)

var (
	calendarsConnector string
	calendarsID        string
	calendarsPageToken string
	calendarsSyncToken string
	calendarsRaw       bool
	calendarsJSON      bool
)

var calendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "List calendars, or fetch one with --id",
	RunE:  runCalendars,
}

func init() {
	calendarsCmd.Flags().StringVarP(&calendarsConnector, "connector", "c", "", "connector to query (required)")
	calendarsCmd.Flags().StringVar(&calendarsID, "id", "", "fetch a single calendar by id")
	calendarsCmd.Flags().StringVar(&calendarsPageToken, "page-token", "", "cursor from a previous page")
	calendarsCmd.Flags().StringVar(&calendarsSyncToken, "sync-token", "", "token to resume an incremental listing")
	calendarsCmd.Flags().BoolVar(&calendarsRaw, "raw", false, "return the provider payload unmapped")
	calendarsCmd.Flags().BoolVar(&calendarsJSON, "json", false, "output as JSON")
	_ = calendarsCmd.MarkFlagRequired("connector")
	rootCmd.AddCommand(calendarsCmd)
}

func runCalendars(cmd *cobra.Command, _ []string) error {
	if err := requireSetup(); err != nil {
		return err
	}

	auth, err := loadAuth(calendarsConnector)
	if err != nil {
		return err
	}

	q := domain.Query{
		CalendarID: calendarsID,
		PageToken:  calendarsPageToken,
		SyncToken:  calendarsSyncToken,
		Raw:        calendarsRaw,
	}

	if calendarsID != "" {
		result, err := registry.Dispatch(cmd.Context(), calendarsConnector, services.MethodGetCalendar, auth, q)
		if err != nil {
			return err
		}
		if res, ok := result.(*domain.CalendarResult); ok && calendarsRaw {
			return outputJSON(cmd, res.Native)
		}
		return outputJSON(cmd, result)
	}

	result, err := registry.Dispatch(cmd.Context(), calendarsConnector, services.MethodListCalendars, auth, q)
	if err != nil {
		return err
	}

	page, ok := result.(*domain.CalendarPage)
	if !ok {
		return fmt.Errorf("unexpected result type %T", result)
	}

	if calendarsRaw {
		return outputJSON(cmd, struct {
			Calendars     any    `json:"calendars"`
			NextPageToken string `json:"next_page_token,omitempty"`
			NextSyncToken string `json:"next_sync_token,omitempty"`
		}{page.Native, page.NextPageToken, page.NextSyncToken})
	}
	if calendarsJSON {
		return outputJSON(cmd, page)
	}
	return outputCalendarTable(cmd, page)
}

func outputCalendarTable(cmd *cobra.Command, page *domain.CalendarPage) error {
	if len(page.Calendars) == 0 {
		cmd.Println("No calendars found.")
		return nil
	}

	cmd.Println("Calendars:")
	for i := range page.Calendars {
		c := &page.Calendars[i]
		flags := ""
		if c.Primary {
			flags += " [primary]"
		}
		if c.ReadOnly {
			flags += " [read-only]"
		}
		if c.Deleted {
			flags += " [deleted]"
		}
		cmd.Printf("  %s  %s%s\n", c.ID, c.Name, flags)
		if c.ProviderName != "" && c.ProfileName != "" {
			cmd.Printf("      %s (%s)\n", c.ProviderName, c.ProfileName)
		}
	}
	if page.NextPageToken != "" {
		cmd.Printf("\nMore results: --page-token %q\n", page.NextPageToken)
	}
	if page.NextSyncToken != "" {
		cmd.Printf("Incremental resume: --sync-token %q\n", page.NextSyncToken)
	}
	return nil
}
