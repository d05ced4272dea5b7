package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	eventsCmd := &cobra.Command{Use: "events", Short: "Event operations"}

	// create
	var name, date, eventType, description string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || date == "" {
				return fmt.Errorf("--name and --date required")
			}
			payload := map[string]interface{}{"name": name, "date": date}
			if eventType != "" {
				payload["type"] = eventType
			}
			if description != "" {
				payload["description"] = description
			}
			data, err := doPostJSON(apiFlag+"/api/events", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Event name (required)")
	createCmd.Flags().StringVarP(&date, "date", "d", "", "Event date, YYYY-MM-DD or a natural expression (required)")
	createCmd.Flags().StringVarP(&eventType, "type", "t", "", "Event type (defaults generic)")
	createCmd.Flags().StringVar(&description, "description", "", "Event description")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("date")
	eventsCmd.AddCommand(createCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all events",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/events")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	eventsCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get EVENT_ID",
		Short: "Get event by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/events/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	eventsCmd.AddCommand(getCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete EVENT_ID",
		Short: "Delete event by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doRequest("DELETE", fmt.Sprintf("%s/api/events/%s", apiFlag, args[0]))
			return err
		},
	}
	eventsCmd.AddCommand(deleteCmd)

	// attach a member
	attachCmd := &cobra.Command{
		Use:   "attach EVENT_ID MEMBER_ID",
		Short: "Attach a member to an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doPostJSON(fmt.Sprintf("%s/api/events/%s/members/%s", apiFlag, args[0], args[1]), nil)
			return err
		},
	}
	eventsCmd.AddCommand(attachCmd)

	// attendees
	attendeesCmd := &cobra.Command{
		Use:   "attendees EVENT_ID",
		Short: "List members attached to an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/events/%s/members", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	eventsCmd.AddCommand(attendeesCmd)

	rootCmd.AddCommand(eventsCmd)
}
