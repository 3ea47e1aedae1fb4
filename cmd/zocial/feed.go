package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"zocial/internal/feed"
	"zocial/internal/realtime"
	"zocial/models"
)

var watchFlag bool

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the post feed, optionally staying connected for live updates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()
		sess := requireSession(store)

		renderer := feed.NewRenderer(newClient(store))
		if err := renderer.LoadPosts(cmd.Context()); err != nil {
			log.Printf("feed load failed: %v", err)
		}
		_ = renderer.Render(os.Stdout)

		if !watchFlag {
			return
		}

		channel, err := realtime.Dial(cmd.Context(), apiURL(), sess.Token)
		if err != nil {
			log.Fatalf("realtime connection failed: %v", err)
		}
		defer func() { _ = channel.Close() }()

		channel.On(models.TagNewPost, func(data json.RawMessage) {
			var post models.Post
			if err := json.Unmarshal(data, &post); err != nil {
				return
			}
			renderer.Append(post)
			_ = feed.RenderCard(os.Stdout, post)
		})
		channel.On(models.TagLike, func(data json.RawMessage) {
			var r models.ReactionPayload
			if err := json.Unmarshal(data, &r); err != nil {
				return
			}
			slog.Info("like received", "user", r.User, "post_id", r.PostID)
		})
		channel.On(models.TagComment, func(data json.RawMessage) {
			var r models.ReactionPayload
			if err := json.Unmarshal(data, &r); err != nil {
				return
			}
			slog.Info("comment received", "user", r.User, "post_id", r.PostID, "text", r.Text)
		})

		fmt.Println("-- watching for new posts, Ctrl-C to stop --")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigChan:
		case <-channel.Done():
			log.Println("realtime connection closed")
		}
	},
}

func init() {
	feedCmd.Flags().BoolVar(&watchFlag, "watch", false, "stay connected and append pushed posts")
	rootCmd.AddCommand(feedCmd)
}
