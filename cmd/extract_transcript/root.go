package main

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/horiagug/yt-transcript-extract/internal/config"
	"github.com/horiagug/yt-transcript-extract/internal/extract"
	"github.com/horiagug/yt-transcript-extract/pkg/yt_transcript"
)

var version = "dev"

type clientFactory func(cfg *config.Config, logger *slog.Logger) extract.TranscriptFetcher

func newClient(cfg *config.Config, logger *slog.Logger) extract.TranscriptFetcher {
	return yt_transcript.NewClient(
		yt_transcript.WithTimeout(cfg.Timeout),
		yt_transcript.WithBaseURL(cfg.BaseURL),
		yt_transcript.WithPreserveFormatting(cfg.PreserveFormatting),
		yt_transcript.WithLogger(logger),
	)
}

func newRootCommand(stdout, stderr io.Writer, newFetcher clientFactory) *cobra.Command {
	var (
		configPath string
		languages  string
		timeout    time.Duration
		baseURL    string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "extract_transcript <video_id>",
		Short: "Fetch a YouTube transcript as flattened text",
		Long: `Fetches the transcript of a YouTube video, preferring German and then
English captions, and prints the result as one line of JSON:

  {"success":true,"text":"..."}
  {"success":false,"error":"..."}

Anything that is not one of the flags below is read as the video ID, so IDs
starting with "-" can be passed as they are.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New(extract.MissingVideoIDMessage)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("languages") {
				cfg.Languages = config.ParseLanguages(languages)
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if flags.Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if debug {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := cfg.Level()
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			if len(args) > 1 {
				logger.Warn("ignoring extra arguments", "args", args[1:])
			}

			videoID := args[0]
			logger.Debug("fetching transcript", "video_id", videoID, "languages", cfg.Languages)

			result := extract.Extract(cmd.Context(), newFetcher(cfg, logger), videoID, cfg.Languages)
			return extract.Encode(stdout, result)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file (env "+config.EnvConfig+")")
	cmd.Flags().StringVar(&languages, "languages", "de,en", "Comma-separated language codes in order of preference")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout for each request")
	cmd.Flags().StringVar(&baseURL, "base-url", "https://www.youtube.com", "YouTube base URL")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}
