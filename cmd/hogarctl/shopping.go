package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	shoppingCmd := &cobra.Command{Use: "shopping", Short: "Shopping list operations"}

	// add
	addCmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add an item to the shopping list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"name": strings.Join(args, " ")}
			data, err := doPostJSON(apiFlag+"/api/shopping", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	shoppingCmd.AddCommand(addCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all shopping items",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/shopping")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	shoppingCmd.AddCommand(listCmd)

	// toggle
	toggleCmd := &cobra.Command{
		Use:   "toggle ITEM_ID",
		Short: "Toggle an item's completed state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doRequest("PATCH", fmt.Sprintf("%s/api/shopping/%s/toggle", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	shoppingCmd.AddCommand(toggleCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete ITEM_ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doRequest("DELETE", fmt.Sprintf("%s/api/shopping/%s", apiFlag, args[0]))
			return err
		},
	}
	shoppingCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(shoppingCmd)
}
