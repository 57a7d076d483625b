package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/usermenu/internal/config"
	"github.com/marcus/usermenu/internal/features"
	"github.com/marcus/usermenu/internal/gating"
	"github.com/marcus/usermenu/internal/models"
	"github.com/marcus/usermenu/internal/output"
	"github.com/marcus/usermenu/internal/session"
	"github.com/marcus/usermenu/pkg/usermenu"
	"github.com/marcus/usermenu/pkg/usermenu/keymap"
	"github.com/spf13/cobra"
)

var runMode models.AppMode

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the avatar and account menu",
	Long: `Launch the interactive avatar button.

Hover the avatar to open the account menu; move away and it closes after the
configured delay. Clicking the avatar or pressing space toggles the menu.

Key bindings:
  space / a      Toggle menu
  j/k, ↑/↓       Move between items
  Enter          Activate item
  L              Logout
  Esc            Close menu
  ?              Toggle help
  q              Quit`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		if !output.IsTerminal() {
			err := errors.New("run needs an interactive terminal")
			output.Error("%v", err)
			return err
		}

		cfg, err := config.Load(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		signals := gating.FromConfig(cfg)
		modeOverride := cmd.Flags().Changed("mode")
		if modeOverride {
			signals.DeploymentMode = runMode
		}

		delay := config.CloseDelay(cfg)
		if d, _ := cmd.Flags().GetDuration("delay"); d > 0 {
			delay = d
		}

		user := cfg.User
		noUser, _ := cmd.Flags().GetBool("no-user")
		if noUser {
			user = nil
		}

		keys := keymap.NewRegistry()
		keymap.RegisterDefaults(keys)
		if kcfg, err := keymap.LoadConfig(keymap.ConfigPath(baseDir)); err != nil {
			output.Warning("ignoring keymap config: %v", err)
		} else {
			keymap.ApplyConfig(keys, kcfg)
		}

		loadFor, _ := cmd.Flags().GetDuration("loading")
		watch, _ := cmd.Flags().GetBool("watch")

		logAck, _ := features.ResolveWith(cfg, features.LogoutAck.Name)
		model := usermenu.NewModel(usermenu.Options{
			Signals:    signals,
			User:       user,
			Loading:    loadFor > 0,
			CloseDelay: delay,
			Logout:     func() error { return session.Logout(baseDir) },
			LogoutAck:  logAck,
			Keymap:     keys,
			Logger:     slog.Default(),
			Version:    versionStr,
		})
		defer model.Dispose()

		slog.Info("menu started",
			"mode", signals.DeploymentMode,
			"account_features", signals.UserHasAccountFeatures,
			"permitted", gating.Permitted(signals),
			"delay", delay)

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if loadFor > 0 {
			go func() {
				select {
				case <-time.After(loadFor):
					p.Send(usermenu.LoadingMsg{Loading: false})
				case <-ctx.Done():
				}
			}()
		}
		if watch {
			go watchSignals(ctx, p, baseDir, config.DefaultWatchDebounce, watchOptions{keepMode: modeOverride, noUser: noUser})
		}

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running menu: %w", err)
		}
		return nil
	},
}

type watchOptions struct {
	keepMode bool
	noUser   bool
}

// watchSignals re-resolves gating inputs whenever the config file changes so
// edits made while the menu is running take effect.
func watchSignals(ctx context.Context, p *tea.Program, baseDir string, debounce time.Duration, opts watchOptions) {
	var last gating.Signals
	var lastUser *models.User
	first := true

	err := config.Watch(ctx, baseDir, debounce, func(cfg *models.Config) {
		signals := gating.FromConfig(cfg)
		if opts.keepMode {
			signals.DeploymentMode = runMode
		}
		if first || signals != last {
			p.Send(usermenu.SignalsMsg{Signals: signals})
		}
		if !opts.noUser && (first || !sameUser(cfg.User, lastUser)) {
			p.Send(usermenu.UserMsg{User: cfg.User})
		}
		first = false
		last = signals
		lastUser = cfg.User
	})
	if err != nil {
		slog.Warn("config watch stopped", "err", err)
	}
}

func sameUser(a, b *models.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Var(&runMode, "mode", "Override deployment mode (oss, saas, hosted)")
	runCmd.Flags().Duration("delay", 0, "Override close delay (default from config, 350ms)")
	runCmd.Flags().Duration("loading", 0, "Show the avatar as loading for this long")
	runCmd.Flags().Bool("no-user", false, "Run without user identity")
	runCmd.Flags().Bool("watch", true, "Reload gating inputs when the config file changes")
}
