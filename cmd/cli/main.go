package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host         string
	playerNumber string
	dryRun       bool
)

var rootCmd = &cobra.Command{
	Use:   "club-cli",
	Short: "A CLI to interact with the club-ranker server",
	Long: `A command-line interface for making requests to the various endpoints
of the club-ranker application. Most commands act as the player given by
--player-number; admin commands need a club admin's number.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVarP(&playerNumber, "player-number", "p", os.Getenv("CLUB_PLAYER_NUMBER"), "Player number to authenticate as")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
