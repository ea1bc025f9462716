// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdblog",
	Short: "mdblog is a personal Markdown blog server",
	Long: `mdblog is a personal blog server that keeps a filesystem tree of
Markdown articles and a SQLite metadata index consistent, and serves
the public blog API and the administrator content API.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
