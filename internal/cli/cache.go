package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cache of converted PNG and PDF files",
		Long: `Manage the cache of converted PNG and PDF files.

Exports are cached by the SVG they were converted from, so re-rendering an
unchanged composition does not run rsvg-convert again. Entries expire after
seven days.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.sweepCache(cmd.Context(), "Cleared", (*cache.FileStore).Clear)
		},
	}
}

// cachePruneCommand creates the "cache prune" subcommand.
func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.sweepCache(cmd.Context(), "Pruned", (*cache.FileStore).Prune)
		},
	}
}

// sweepCache opens the cache directory, if any, and runs sweep over it.
func (c *CLI) sweepCache(ctx context.Context, verb string, sweep func(*cache.FileStore, context.Context) (int, error)) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		c.out().info("Cache is empty")
		return nil
	}

	store, err := cache.NewFileStore(dir, cache.DefaultMaxAge)
	if err != nil {
		return err
	}
	count, err := sweep(store, ctx)
	if err != nil {
		return err
	}

	c.out().success("%s %d cached artifact(s)", verb, count)
	c.out().detail("Directory: %s", dir)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
