package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd, metricsCmd, loginCmd, leaderboardCmd, playersCmd, statsCmd,
		addPlayerCmd, removePlayerCmd, sessionsCmd, createSessionCmd, removeSessionCmd,
		resultCmd, recordCmd, shortlistCmd, postLeaderboardCmd)

	addPlayerCmd.Flags().Bool("admin", false, "Make the new player a club admin")

	recordCmd.Flags().Int("wins", 0, "Games won in the session")
	recordCmd.Flags().Int("games", 0, "Games played in the session")
	recordCmd.MarkFlagRequired("wins")
	recordCmd.MarkFlagRequired("games")

	shortlistCmd.Flags().String("session", "", "Session the shortlist is for")
	shortlistCmd.Flags().StringSlice("players", nil, "Comma separated player ids")
	shortlistCmd.Flags().Bool("post", false, "Also post the shortlist to Slack")
	shortlistCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the Slack message instead of sending it")
	shortlistCmd.MarkFlagRequired("players")

	postLeaderboardCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the Slack message instead of sending it")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get the Prometheus metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <player-number>",
	Short: "Look up the player behind a player number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/login", map[string]string{"player_number": args[0]})
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the club leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/leaderboard", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List club members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/players", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <player-id>",
	Short: "Show a player's recent win percentage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/players/"+url.PathEscape(args[0])+"/stats", nil)
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player <name> <player-number>",
	Short: "Add a club member (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, _ := cmd.Flags().GetBool("admin")
		return performRequest(http.MethodPost, "/api/players", map[string]any{
			"name":          args[0],
			"player_number": args[1],
			"is_club_admin": admin,
		})
	},
}

var removePlayerCmd = &cobra.Command{
	Use:   "remove-player <player-id>",
	Short: "Remove a club member (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/api/players/"+url.PathEscape(args[0]), nil)
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/sessions", nil)
	},
}

var createSessionCmd = &cobra.Command{
	Use:   "create-session <name>",
	Short: "Create a session dated now (admin)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/sessions", map[string]string{"name": strings.Join(args, " ")})
	},
}

var removeSessionCmd = &cobra.Command{
	Use:   "remove-session <session-id>",
	Short: "Remove a session and its results (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/api/sessions/"+url.PathEscape(args[0]), nil)
	},
}

var resultCmd = &cobra.Command{
	Use:   "result <session-id> <player-id>",
	Short: "Show a player's result for a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, resultPath(args[0], args[1]), nil)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <session-id> <player-id>",
	Short: "Record a player's wins and games for a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wins, _ := cmd.Flags().GetInt("wins")
		games, _ := cmd.Flags().GetInt("games")
		return performRequest(http.MethodPut, resultPath(args[0], args[1]), map[string]int{"wins": wins, "games": games})
	},
}

var shortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Rank a subset of players (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		players, _ := cmd.Flags().GetStringSlice("players")
		post, _ := cmd.Flags().GetBool("post")

		query := url.Values{}
		if post {
			query.Set("post", "true")
		}
		if dryRun {
			query.Set("dry_run", "true")
		}
		endpoint := "/api/shortlist"
		if len(query) > 0 {
			endpoint += "?" + query.Encode()
		}
		return performRequest(http.MethodPost, endpoint, map[string]any{"session_id": session, "player_ids": players})
	},
}

var postLeaderboardCmd = &cobra.Command{
	Use:   "post-leaderboard",
	Short: "Post the leaderboard to Slack now (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/api/leaderboard/post"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performRequest(http.MethodPost, endpoint, nil)
	},
}

func resultPath(sessionID, playerID string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + "/results/" + url.PathEscape(playerID)
}

func performRequest(method, endpoint string, payload any) error {
	target := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerNumber != "" {
		req.Header.Set("X-Player-Number", playerNumber)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
