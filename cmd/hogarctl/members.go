package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	membersCmd := &cobra.Command{Use: "members", Short: "Family member operations"}

	// create
	var name, email, phone, birthDate string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a family member",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name required")
			}
			payload := map[string]interface{}{"name": name}
			if email != "" {
				payload["email"] = email
			}
			if phone != "" {
				payload["phone"] = phone
			}
			if birthDate != "" {
				payload["birthDate"] = birthDate
			}
			data, err := doPostJSON(apiFlag+"/api/members", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Member name (required)")
	createCmd.Flags().StringVarP(&email, "email", "e", "", "Member email")
	createCmd.Flags().StringVarP(&phone, "phone", "p", "", "Member phone")
	createCmd.Flags().StringVarP(&birthDate, "birthDate", "b", "", "Birth date, YYYY-MM-DD")
	_ = createCmd.MarkFlagRequired("name")
	membersCmd.AddCommand(createCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all members",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/members")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	membersCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get MEMBER_ID",
		Short: "Get member by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/members/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	membersCmd.AddCommand(getCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete MEMBER_ID",
		Short: "Delete member by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doRequest("DELETE", fmt.Sprintf("%s/api/members/%s", apiFlag, args[0]))
			return err
		},
	}
	membersCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(membersCmd)
}
