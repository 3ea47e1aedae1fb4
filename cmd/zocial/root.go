// Command zocial is the terminal client for the zocial backend: login, feed,
// posting, chat, and the admin/shop surfaces, plus a local stub server.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"zocial/config"
	"zocial/internal/api"
	"zocial/internal/session"
	"zocial/models"
)

var (
	cfg *config.Config

	serverFlag string
	stateFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "zocial",
	Short: "Terminal client for the zocial social network",
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		cfg = config.Load()
	})

	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "backend origin (overrides config)")
	rootCmd.PersistentFlags().StringVar(&stateFlag, "state", "", "session state database path (overrides config)")
}

func apiURL() string {
	if serverFlag != "" {
		return serverFlag
	}
	return cfg.APIURL
}

func openStore() *session.Store {
	path := stateFlag
	if path == "" {
		path = cfg.StatePath
	}
	store, err := session.Open(path)
	if err != nil {
		log.Fatalf("opening session store: %v", err)
	}
	return store
}

func newClient(store *session.Store) *api.Client {
	return api.NewClient(apiURL(), store)
}

// requireSession gates a command on a stored session. Absent or malformed
// state is terminal: print the login hint and exit before any fetch.
func requireSession(store *session.Store) models.Session {
	sess, err := store.Require()
	if err != nil {
		fmt.Println("You are not logged in. Run `zocial login <email> <password>` first.")
		os.Exit(1)
	}
	return sess
}
