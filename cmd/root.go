package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizservice",
	Short: "Story quiz backend for young readers",
	Long:  "quizservice generates, caches, and scores AI-generated comprehension quizzes for children's story books.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("port", "", "HTTP listen port (overrides QUIZSVC_PORT)")
	rootCmd.PersistentFlags().String("db", "", "Database DSN: postgres:// URL or sqlite path (overrides QUIZSVC_DB)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}
