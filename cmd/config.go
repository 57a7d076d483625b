package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/marcus/usermenu/internal/config"
	"github.com/marcus/usermenu/internal/features"
	"github.com/marcus/usermenu/internal/models"
	"github.com/marcus/usermenu/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show or change project configuration",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(cfg)
		}

		fmt.Printf("%-14s %s\n", "app mode:", config.AppModeOf(cfg))
		fmt.Printf("%-14s %s\n", "close delay:", config.CloseDelay(cfg))
		if cfg.User != nil {
			fmt.Printf("%-14s %s %s\n", "user:", cfg.User.Name, output.Subtle(cfg.User.AvatarURL))
		} else {
			fmt.Printf("%-14s %s\n", "user:", output.Subtle("(none)"))
		}
		names := make([]string, 0, len(cfg.FeatureFlags))
		for name := range cfg.FeatureFlags {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%-14s %s=%s\n", "flag:", name, output.FormatEnabled(cfg.FeatureFlags[name]))
		}
		return nil
	},
}

var configSetModeCmd = &cobra.Command{
	Use:   "set-mode <oss|saas|hosted>",
	Short: "Set the deployment mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := models.ParseAppMode(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if err := config.SetAppMode(getBaseDir(), mode); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("app mode set to %s", mode)
		return nil
	},
}

var configSetDelayCmd = &cobra.Command{
	Use:   "set-delay <duration>",
	Short: "Set the menu close delay (e.g. 350ms)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := time.ParseDuration(args[0])
		if err != nil {
			output.Error("invalid duration %q: %v", args[0], err)
			return err
		}
		if err := config.SetCloseDelay(getBaseDir(), d); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("close delay set to %s", d)
		return nil
	},
}

var configSetUserCmd = &cobra.Command{
	Use:   "set-user <name>",
	Short: "Set the identity shown on the avatar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		avatar, _ := cmd.Flags().GetString("avatar")
		user := &models.User{Name: args[0], AvatarURL: avatar}
		if err := config.SetUser(getBaseDir(), user); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("user set to %s", user.Name)
		return nil
	},
}

var configClearUserCmd = &cobra.Command{
	Use:   "clear-user",
	Short: "Remove the identity shown on the avatar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetUser(getBaseDir(), nil); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("user cleared")
		return nil
	},
}

var configSetFlagCmd = &cobra.Command{
	Use:   "set-flag <feature> <true|false>",
	Short: "Override a feature flag for this project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(strings.TrimSpace(args[0]))
		if !features.IsKnownFeature(name) {
			err := fmt.Errorf("unknown feature %q", args[0])
			output.Error("%v", err)
			return err
		}
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			output.Error("invalid value %q: want true or false", args[1])
			return err
		}
		if err := config.SetFeatureFlag(getBaseDir(), name, enabled); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("%s = %v", name, enabled)
		return nil
	},
}

var configUnsetFlagCmd = &cobra.Command{
	Use:   "unset-flag <feature>",
	Short: "Remove a project feature flag override",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(strings.TrimSpace(args[0]))
		if err := config.UnsetFeatureFlag(getBaseDir(), name); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("%s override removed", name)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively choose deployment mode and user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()
		cfg, err := config.Load(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		mode := string(config.AppModeOf(cfg))
		accountFeatures, _ := features.ResolveWith(cfg, features.AccountFeatures.Name)
		var name string
		if cfg.User != nil {
			name = cfg.User.Name
		}

		modeOptions := []huh.Option[string]{
			huh.NewOption("Open / self-hosted", string(models.AppModeOSS)),
			huh.NewOption("SaaS", string(models.AppModeSaaS)),
			huh.NewOption("Hosted", string(models.AppModeHosted)),
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Deployment mode").
					Options(modeOptions...).
					Value(&mode),
				huh.NewConfirm().
					Title("Enable account features for this user?").
					Value(&accountFeatures),
				huh.NewInput().
					Title("Display name").
					Placeholder("leave empty for no user").
					Value(&name),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("config form: %w", err)
		}

		if err := config.SetAppMode(baseDir, models.AppMode(mode)); err != nil {
			output.Error("%v", err)
			return err
		}
		if err := config.SetFeatureFlag(baseDir, features.AccountFeatures.Name, accountFeatures); err != nil {
			output.Error("%v", err)
			return err
		}
		var user *models.User
		if name != "" {
			user = &models.User{Name: name}
			if cfg.User != nil {
				user.AvatarURL = cfg.User.AvatarURL
			}
		}
		if err := config.SetUser(baseDir, user); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("configuration saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("json", false, "JSON output")
	configSetUserCmd.Flags().String("avatar", "", "Avatar image URL")
	configCmd.AddCommand(
		configSetModeCmd,
		configSetDelayCmd,
		configSetUserCmd,
		configClearUserCmd,
		configSetFlagCmd,
		configUnsetFlagCmd,
		configInitCmd,
	)
}
