package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/roooooh55roooooh55-star/Roohdodo/internal/api"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/config"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/feed"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/interactions"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/narration"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
)

func main() {
	home, _ := os.UserHomeDir()
	defaultDB := filepath.Join(home, ".roohdodo", "rooh.db")

	rootCmd := &cobra.Command{
		Use:   "roohdodo",
		Short: "Horror shorts gallery backend with narration timing",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "database path")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(segmentCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore(path string) (*store.Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(path)
}

func addCmd() *cobra.Command {
	var (
		url         string
		category    string
		videoType   string
		narrText    string
		featured    bool
		repository  string
		audioTarget string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Publish a new video document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if strings.TrimSpace(title) == "" || strings.TrimSpace(url) == "" {
				return fmt.Errorf("title and --url are required")
			}
			if category != "" && !domain.ValidCategory(category) {
				return fmt.Errorf("unknown category: %s", category)
			}
			if category == "" {
				category = domain.Categories[0]
			}

			var segments []domain.NarrationSegment
			if narrText != "" {
				var err error
				segments, err = narration.Split(narrText)
				if err != nil {
					return err
				}
			}

			s, err := getStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			added, err := s.AddVideo(domain.Video{
				Title:       title,
				URL:         url,
				Category:    category,
				Type:        domain.VideoType(videoType),
				Repository:  domain.Repository(repository),
				AudioTarget: domain.AudioTarget(audioTarget),
				Narration:   narrText,
				Segments:    segments,
				Featured:    featured,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Added video: %s\n", added.ID[:8])
			fmt.Printf("Title: %s\n", truncate(added.Title, 80))
			if len(added.Segments) > 0 {
				fmt.Printf("Segments: %d (all at 0s, time them via the studio)\n", len(added.Segments))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "media url (required)")
	cmd.Flags().StringVar(&category, "category", "", "content category")
	cmd.Flags().StringVar(&videoType, "type", "short", "short or long")
	cmd.Flags().StringVar(&narrText, "narration", "", "narration text (use | between captions)")
	cmd.Flags().BoolVar(&featured, "featured", false, "pin to the top of the trend list")
	cmd.Flags().StringVar(&repository, "repository", "repo_r2", "media repository")
	cmd.Flags().StringVar(&audioTarget, "audio-target", "narration", "caption source: none, title or narration")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List videos, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			videos, err := s.ListVideos()
			if err != nil {
				return err
			}

			if len(videos) == 0 {
				fmt.Println("No videos yet. Use 'roohdodo add' to publish one.")
				return nil
			}

			for _, v := range videos {
				stats := feed.DeterministicStats(v.URL)
				fmt.Printf("%s  %-5s  %s views  %s\n",
					v.ID[:8], v.Type, feed.FormatCount(stats.Views), truncate(v.Title, 50))
			}
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a video document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			// Find by prefix
			videos, err := s.ListVideos()
			if err != nil {
				return err
			}
			var fullID string
			for _, v := range videos {
				if strings.HasPrefix(v.ID, args[0]) {
					fullID = v.ID
					break
				}
			}
			if fullID == "" {
				return fmt.Errorf("video not found: %s", args[0])
			}

			if err := s.DeleteVideo(fullID); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", fullID[:8])
			return nil
		},
	}
}

func segmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "segment [text]",
		Short: "Preview how narration text splits into caption segments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			segments, err := narration.Split(text)
			if err != nil {
				return err
			}
			for i, seg := range segments {
				fmt.Printf("%2d  %s\n", i+1, seg.Text)
			}
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server and feed poller",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Root().PersistentFlags().Changed("db") {
				cfg.DBPath = dbPath
			}

			s, err := getStore(cfg.DBPath)
			if err != nil {
				return err
			}
			// Note: don't defer s.Close() as server runs indefinitely

			inter := interactions.New(interactions.FileStorage{Path: cfg.InteractionsPath})

			poller := feed.NewPoller(feed.SourceFunc(func(ctx context.Context) ([]domain.Video, error) {
				return s.ListVideos()
			}), time.Duration(cfg.PollIntervalSeconds)*time.Second, nil)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go poller.Run(ctx)

			server := api.New(s, poller, inter, cfg.Addr, cfg.AdminPasscode, cfg.DescribeModel)
			return server.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "server address")
	return cmd
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
