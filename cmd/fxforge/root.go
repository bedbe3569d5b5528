package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/fxforge/internal/cli"
	"github.com/aretw0/fxforge/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxforge",
	Short: "fxforge generates animator layers and expression menus",
	Long: `fxforge builds animation state-machine layers (boolean, integer and overlay)
and the paginated expression menu that drives them, from YAML manifests.
Projects are persisted in a configurable store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("store", cli.StoreFile, "Project store: memory, file, redis, sqlite or s3")
	flags.String("dir", "", "Directory for the file store (default .fxforge/projects)")
	flags.String("redis-addr", "", "Redis address for the redis store")
	flags.String("redis-password", "", "Redis password")
	flags.Int("redis-db", 0, "Redis database number")
	flags.String("sqlite", "fxforge.db", "Database path for the sqlite store")
	flags.String("s3-bucket", "", "Bucket for the s3 store")
	flags.String("s3-region", "", "Region for the s3 store")
	flags.String("s3-endpoint", "", "Custom endpoint for the s3 store (enables path-style)")
	flags.String("s3-prefix", "", "Key prefix for the s3 store")
	flags.Int("menu-capacity", 0, "Controls per menu page (default 8)")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// openEnv reads the persistent flags and opens the workspace they describe.
func openEnv(cmd *cobra.Command, opts cli.WorkspaceOptions) (*cli.Env, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	opts.Store.Kind, _ = f.GetString("store")
	opts.Store.Dir, _ = f.GetString("dir")
	opts.Store.RedisAddr, _ = f.GetString("redis-addr")
	opts.Store.RedisPassword, _ = f.GetString("redis-password")
	opts.Store.RedisDB, _ = f.GetInt("redis-db")
	opts.Store.SQLitePath, _ = f.GetString("sqlite")
	opts.Store.S3Bucket, _ = f.GetString("s3-bucket")
	opts.Store.S3Region, _ = f.GetString("s3-region")
	opts.Store.S3Endpoint, _ = f.GetString("s3-endpoint")
	opts.Store.S3Prefix, _ = f.GetString("s3-prefix")
	opts.MenuCapacity, _ = f.GetInt("menu-capacity")

	return cli.NewEnv(cmd.Context(), opts, logger)
}
