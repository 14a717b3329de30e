package cli

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/urfave/cli/v3"

	"tracksync/internal/config"
	"tracksync/internal/correlate"
	"tracksync/internal/model"
	"tracksync/internal/progress"
	"tracksync/internal/provider"
	"tracksync/internal/provider/file"
	"tracksync/internal/ui"
	"tracksync/internal/util"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Display version and build information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("tracksync version %s\n", Version)
			fmt.Printf("  commit: %s\n", Commit)
			fmt.Printf("  built: %s\n", BuildDate)
			fmt.Printf("  go: %s\n", runtime.Version())
			return nil
		},
	}
}

// loadConfig reads configuration, honoring the global --config flag.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// buildRegistry wires up the live providers from configuration. Cloud
// providers need credentials that are handled elsewhere; here only the
// directory-backed providers come up. Everything else stays unregistered,
// and writes against it report the provider as unavailable.
func buildRegistry(cfg *config.Config) *provider.Registry {
	reg := provider.NewRegistry()

	for _, name := range []model.Provider{model.File, model.StravaJSON} {
		pc := cfg.Provider(name)
		if pc.Enabled && pc.Path != "" {
			reg.RegisterPuller(name, file.New(util.ExpandPath(pc.Path)))
		}
	}
	return reg
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage tracksync configuration",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Display the effective configuration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return fmt.Errorf("failed to load config: %w", err)
					}
					printConfig(cfg)
					return nil
				},
			},
			{
				Name:  "init",
				Usage: "Write a default configuration file",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if config.Exists() {
						return fmt.Errorf("config file already exists at %s", config.FilePath())
					}
					if err := config.Default().Save(); err != nil {
						return fmt.Errorf("failed to write config: %w", err)
					}
					fmt.Println(ui.StatusSuccess("Wrote " + config.FilePath()))
					return nil
				},
			},
			{
				Name:  "path",
				Usage: "Print the configuration file path",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Println(config.FilePath())
					return nil
				},
			},
		},
	}
}

func printConfig(cfg *config.Config) {
	fmt.Printf("%s %s\n", ui.Header("Home timezone:"), cfg.HomeTimezone)
	fmt.Printf("%s %t\n", ui.Header("Debug:"), cfg.Debug)
	fmt.Println(ui.Header("Providers:"))

	names := make([]model.Provider, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		pc := cfg.Provider(name)
		state := ui.Dim("disabled")
		if pc.Enabled {
			state = ui.Success("enabled")
		}
		fmt.Printf("  %-12s %s  priority=%d  sync_name=%t  sync_equipment=%t\n",
			name, state, pc.EffectivePriority(),
			pc.SyncNameEnabled(), pc.SyncEquipmentEnabled())
		if pc.Path != "" {
			fmt.Printf("               path=%s\n", pc.Path)
		}
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show provider availability and authority ordering",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			reg := buildRegistry(cfg)

			pullable := make(map[model.Provider]bool)
			for _, p := range reg.Providers() {
				pullable[p] = true
			}

			order := cfg.PriorityOrder()
			if len(order) == 0 {
				fmt.Println(ui.StatusWarning("No providers enabled. Run 'tracksync config init' and enable providers."))
				return nil
			}

			fmt.Println(ui.Header("Authority order (most authoritative first):"))
			for i, p := range order {
				avail := ui.StatusSkipped("no local pull source")
				if pullable[p] {
					avail = ui.StatusSuccess("pull ready")
				}
				fmt.Printf("  %d. %-12s %s\n", i+1, p, avail)
			}
			return nil
		},
	}
}

func pullCommand() *cli.Command {
	return &cli.Command{
		Name:      "pull",
		Usage:     "Pull activities from all providers for one month",
		UsageText: "tracksync pull <YYYY-MM>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			period, err := periodArg(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			reg := buildRegistry(cfg)

			providers := reg.Providers()
			if len(providers) == 0 {
				fmt.Println(ui.StatusWarning("No pullable providers configured"))
				return nil
			}

			bar := progress.Simple(int64(len(providers)), "Pulling "+period)
			pulled, errs := pullWithProgress(ctx, reg, period, bar)
			_ = bar.Finish()

			total := 0
			for _, p := range providers {
				if err, failed := errs[p]; failed {
					fmt.Println(ui.StatusError(fmt.Sprintf("%s: %v", p, err)))
					continue
				}
				n := len(pulled[p])
				total += n
				fmt.Println(ui.StatusSuccess(fmt.Sprintf("%s: %d activities", p, n)))
			}
			fmt.Printf("\n%s %d activities for %s\n", ui.Bold("Total:"), total, period)
			return nil
		},
	}
}

// pullWithProgress pulls each provider in turn, ticking the bar per
// provider so slow pulls show movement.
func pullWithProgress(ctx context.Context, reg *provider.Registry, period string, bar *progress.Bar) (map[model.Provider][]model.Record, map[model.Provider]error) {
	pulled := make(map[model.Provider][]model.Record)
	errs := make(map[model.Provider]error)

	for _, name := range reg.Providers() {
		bar.Describe(fmt.Sprintf("Pulling %s", name))
		records, err := reg.Pull(ctx, name, period)
		if err != nil {
			errs[name] = err
		} else {
			pulled[name] = records
		}
		_ = bar.Add(1)
	}
	return pulled, errs
}

// periodArg extracts and validates the single YYYY-MM argument.
func periodArg(cmd *cli.Command) (string, error) {
	args := cmd.Args()
	if args.Len() != 1 {
		return "", fmt.Errorf("expected exactly one argument: <YYYY-MM>")
	}
	period := args.Get(0)
	if _, err := correlate.ParsePeriod(period); err != nil {
		return "", err
	}
	return period, nil
}
