package commands

import (
	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "taskdep",
	Short: "A CLI task tracker with dependency-aware blocking",
	Long: `taskdep is a command-line task tracker built around a dependency engine.
Tasks form subtask trees and blocking graphs; every mutation is validated
so the graph can never become cyclic or deadlocked, and batch operations
either fully apply or leave nothing behind.`,
}

// initDB initializes the database and panics on error
func initDB() {
	if err := db.Initialize(); err != nil {
		panic(err) // For now, panic on DB init failure
	}
}

// actorID reads the --as flag shared by all mutating commands
func actorID(cmd *cobra.Command) uint {
	id, _ := cmd.Flags().GetUint("as")
	return id
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Uint("as", 1, "Acting user ID")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(unblockCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
