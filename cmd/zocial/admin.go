package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List accounts (admin)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()
		requireSession(store)

		users, err := newClient(store).Users(cmd.Context())
		if err != nil {
			log.Fatalf("fetching users: %v", err)
		}
		for _, u := range users {
			fmt.Printf("%d\t%s\t%s\n", u.ID, u.Name, u.Email)
		}
	},
}

var usersRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an account (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()
		requireSession(store)

		if err := newClient(store).DeleteUser(cmd.Context(), args[0]); err != nil {
			log.Fatalf("deleting user: %v", err)
		}
		fmt.Println("Deleted")
	},
}

func init() {
	usersCmd.AddCommand(usersRmCmd)
	rootCmd.AddCommand(usersCmd)
}
