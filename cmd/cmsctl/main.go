package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// session is the repository the commands run against, opened before the
// command and closed after it.
type session struct {
	configFile string
	verbose    bool
	runtime    *config.Runtime
}

// ctx runs commands with full permissions; cmsctl is an operator tool.
func (s *session) ctx(cmd *cobra.Command) context.Context {
	return simplecms.WithSudo(cmd.Context())
}

func (s *session) repo() simplecms.Repository {
	return s.runtime.Repository
}

func (s *session) open(cmd *cobra.Command) error {
	cfg, err := config.Load(config.WithFile(s.configFile), config.WithEnv())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	s.runtime, err = cfg.Build(cmd.Context(), logger)
	if err != nil {
		return err
	}
	// A memory database starts empty every run.
	if cfg.DatabaseType() == "memory" {
		if err := s.runtime.Seed(cmd.Context()); err != nil {
			return fmt.Errorf("failed to seed memory database: %w", err)
		}
	}
	return nil
}

func (s *session) close() {
	if s.runtime != nil {
		s.runtime.Close()
	}
}

func NewRootCommand() *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:   "cmsctl",
		Short: "Operate a simple-cms content repository",
		Long: `cmsctl runs maintenance and authoring tasks directly against the
repository configured by DATABASE_URL, STORAGE_URL and the other server
settings, or by a YAML config file.

Without DATABASE_URL the repository lives in memory and is seeded with the
install data on every run.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&s.configFile, "config", "c", os.Getenv("CONFIG_FILE"), "config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(NewSeedCommand(s))
	rootCmd.AddCommand(NewContentTypesCommand(s))
	rootCmd.AddCommand(NewUsersCommand(s))
	rootCmd.AddCommand(NewSearchCommand(s))
	rootCmd.AddCommand(NewTrashCommand(s))
	rootCmd.AddCommand(NewReindexCommand(s))
	rootCmd.AddCommand(NewUploadCommand(s))
	rootCmd.AddCommand(NewDownloadCommand(s))

	return rootCmd
}
