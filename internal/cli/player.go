package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player profile commands",
	}

	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerLoginCmd())
	cmd.AddCommand(newPlayerUpdateCmd())

	return cmd
}

// sectionPaths maps the --section flag to API routes
var sectionPaths = map[string]string{
	"all":      "/api/player/all",
	"privy":    "/api/player/privy",
	"game":     "/api/player/game",
	"gamemode": "/api/player/gamemode",
	"vehicle":  "/api/player/vehicle",
}

func newPlayerGetCmd() *cobra.Command {
	var user, section string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch a player profile or one of its sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ok := sectionPaths[section]
			if !ok {
				return fmt.Errorf("unknown section %q", section)
			}

			var result struct {
				Success bool            `json:"success"`
				Data    json.RawMessage `json:"data"`
			}
			if err := client.Get(path+userQuery(user), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			switch section {
			case "all":
				var p Player
				if err := json.Unmarshal(result.Data, &p); err != nil {
					return fmt.Errorf("failed to parse response: %w", err)
				}
				out.Print(p)
			case "privy":
				var d PrivyData
				if err := json.Unmarshal(result.Data, &d); err != nil {
					return fmt.Errorf("failed to parse response: %w", err)
				}
				out.Print(d)
			case "game":
				var d UserGameData
				if err := json.Unmarshal(result.Data, &d); err != nil {
					return fmt.Errorf("failed to parse response: %w", err)
				}
				out.Print(d)
			case "gamemode":
				var d PlayerGameModeData
				if err := json.Unmarshal(result.Data, &d); err != nil {
					return fmt.Errorf("failed to parse response: %w", err)
				}
				out.Print(d)
			case "vehicle":
				var d PlayerVehicleData
				if err := json.Unmarshal(result.Data, &d); err != nil {
					return fmt.Errorf("failed to parse response: %w", err)
				}
				out.Print(d)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Player identifier (required)")
	cmd.Flags().StringVar(&section, "section", "all", "Section: all, privy, game, gamemode, vehicle")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newPlayerLoginCmd() *cobra.Command {
	var identifier, wallet, email, discord string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Record an auth-provider login for a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			meta := map[string]string{}
			if wallet != "" {
				meta["walletAddress"] = wallet
			}
			if email != "" {
				meta["email"] = email
			}
			if discord != "" {
				meta["discord"] = discord
			}

			req := map[string]any{
				"identifier":    identifier,
				"privyMetaData": meta,
			}
			var result struct {
				Success bool `json:"success"`
			}
			if err := client.Post("/api/player/login", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("login recorded")
			return nil
		},
	}

	cmd.Flags().StringVar(&identifier, "identifier", "", "Login identifier")
	cmd.Flags().StringVar(&wallet, "wallet", "", "Wallet address")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&discord, "discord", "", "Discord handle")

	return cmd
}

func newPlayerUpdateCmd() *cobra.Command {
	var user, section, file string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Apply an update payload to a player profile",
		Long: `Apply an update payload to a player profile.

The payload is read as JSON from --file, or from stdin when --file is "-".
Its shape must match the section being updated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ok := sectionPaths[section]
			if !ok {
				return fmt.Errorf("unknown section %q", section)
			}

			var data []byte
			var err error
			if file == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("failed to read payload: %w", err)
			}

			var payload json.RawMessage
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("invalid payload JSON: %w", err)
			}

			var result struct {
				Success bool            `json:"success"`
				Data    json.RawMessage `json:"data"`
			}
			if err := client.Post(path+userQuery(user), payload, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("update applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Player identifier (required)")
	cmd.Flags().StringVar(&section, "section", "all", "Section: all, privy, game, gamemode, vehicle")
	cmd.Flags().StringVar(&file, "file", "-", "Payload file, or - for stdin")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
