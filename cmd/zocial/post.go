package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"zocial/internal/api"
	"zocial/internal/feed"
	"zocial/internal/realtime"
)

var imageFlag string

var postCmd = &cobra.Command{
	Use:   "post [content...]",
	Short: "Publish a new post with text and/or an image",
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()
		sess := requireSession(store)

		var image *api.Upload
		if imageFlag != "" {
			f, err := os.Open(imageFlag)
			if err != nil {
				log.Fatalf("opening image: %v", err)
			}
			defer func() { _ = f.Close() }()
			image = &api.Upload{Name: filepath.Base(imageFlag), Reader: f}
		}

		client := newClient(store)
		renderer := feed.NewRenderer(client)

		// Best effort: the post still publishes when realtime is down, the
		// other clients just won't hear about it until their next load.
		var emitter feed.Emitter
		channel, err := realtime.Dial(cmd.Context(), apiURL(), sess.Token)
		if err != nil {
			log.Printf("realtime unavailable, posting without broadcast: %v", err)
		} else {
			defer func() { _ = channel.Close() }()
			emitter = channel
		}

		composer := feed.NewComposer(client, renderer, emitter)
		post, err := composer.Submit(cmd.Context(), strings.Join(args, " "), image)
		if err != nil {
			log.Fatalf("post failed: %v", err)
		}
		_ = feed.RenderCard(os.Stdout, post)
	},
}

func init() {
	postCmd.Flags().StringVar(&imageFlag, "image", "", "path of an image to attach")
	rootCmd.AddCommand(postCmd)
}
