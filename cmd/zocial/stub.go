package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"zocial/internal/stub"
)

var (
	stubDBFlag   string
	stubSeedFlag bool
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local stub backend for development",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		server, err := stub.New(stub.Config{
			DSN:       stubDBFlag,
			JWTSecret: cfg.JWTSecret,
			RedisURL:  cfg.RedisURL,
		})
		if err != nil {
			log.Fatalf("starting stub: %v", err)
		}

		if stubSeedFlag {
			if err := stub.Seed(server.DB(), 5, 20); err != nil {
				log.Fatalf("seeding stub: %v", err)
			}
			log.Printf("Seeded demo data; admin@example.com / %s", stub.SeedPassword)
		}

		// Graceful shutdown
		go func() {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan

			log.Println("Shutting down stub server...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Printf("Stub shutdown error: %v", err)
			}
		}()

		log.Printf("Stub server starting on port %s...", cfg.Port)
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	stubCmd.Flags().StringVar(&stubDBFlag, "db", "", "sqlite path for stub data (default in-memory)")
	stubCmd.Flags().BoolVar(&stubSeedFlag, "seed", false, "seed demo users and posts")
	rootCmd.AddCommand(stubCmd)
}
