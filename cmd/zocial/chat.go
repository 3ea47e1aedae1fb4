package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"zocial/internal/feed"
	"zocial/internal/realtime"
	"zocial/internal/session"
	"zocial/models"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Join the global chat room",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()
		sess := requireSession(store)

		channel, err := realtime.Dial(cmd.Context(), apiURL(), sess.Token)
		if err != nil {
			log.Fatalf("realtime connection failed: %v", err)
		}
		defer func() { _ = channel.Close() }()

		chatLog := feed.NewChatLog(channel)
		chatLog.OnMessage = func(m models.ChatMessage) {
			fmt.Printf("%s: %s\n", m.Author, m.Text)
		}

		// Prefer the long display name when the user has set one.
		author := sess.User.Name
		if name, ok := store.Value(session.KeyFullName); ok && name != "" {
			author = name
		}

		fmt.Println("-- connected, type messages and press enter; Ctrl-D to leave --")
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			text := scanner.Text()
			if text == "" {
				continue
			}
			if err := chatLog.Send(author, text); err != nil {
				log.Printf("send failed: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
