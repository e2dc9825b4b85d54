package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dailysync/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dailysync",
		Short: "DailySync API Server",
		Long:  `DailySync tracks daily standups and task assignments for teams, with role-based rollups and standup reminder mail.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewRemindCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
