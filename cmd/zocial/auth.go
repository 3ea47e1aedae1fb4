package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Authenticate and store the session locally",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()

		sess, err := newClient(store).Login(cmd.Context(), args[0], args[1])
		if err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := store.SetSession(sess); err != nil {
			log.Fatalf("saving session: %v", err)
		}
		fmt.Printf("Logged in as %s\n", sess.User.Name)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <name> <email> <password>",
	Short: "Create an account and store the session locally",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()

		sess, err := newClient(store).Register(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			log.Fatalf("registration failed: %v", err)
		}
		if err := store.SetSession(sess); err != nil {
			log.Fatalf("saving session: %v", err)
		}
		fmt.Printf("Welcome, %s\n", sess.User.Name)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Destroy the stored session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			log.Fatalf("clearing session: %v", err)
		}
		fmt.Println("Logged out")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
}
