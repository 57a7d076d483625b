package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/marcus/usermenu/internal/config"
	"github.com/marcus/usermenu/internal/output"
	"github.com/marcus/usermenu/internal/session"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Start a local session",
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			if cfg, err := config.Load(baseDir); err == nil && cfg.User != nil {
				name = cfg.User.Name
			}
		}

		sess, err := session.GetOrCreate(baseDir, name)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		slog.Debug("session ready", "id", sess.ID)
		output.Success("logged in (%s)", sess.ID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "End the local session",
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.Logout(getBaseDir()); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the current session",
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.Get(getBaseDir())
		if errors.Is(err, session.ErrNoSession) {
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				output.JSONError(output.ErrCodeNoSession, err.Error())
			} else {
				output.Warning("%v", err)
			}
			return err
		}
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(sess)
		}
		name := sess.UserName
		if name == "" {
			name = "(anonymous)"
		}
		fmt.Printf("%s %s, since %s\n", output.Title(name), output.Subtle(sess.ID), output.FormatTimeAgo(sess.StartedAt))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	loginCmd.Flags().String("name", "", "User name (default from config)")
	whoamiCmd.Flags().Bool("json", false, "JSON output")
}
