package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"tracksync/internal/export"
	"tracksync/internal/model"
	"tracksync/internal/reconcile"
	"tracksync/internal/ui"
)

func applyCommand() *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "Apply changes previously exported with 'sync --export'",
		UsageText: "tracksync apply <changes-file> <YYYY-MM>",
		Description: `Load a change file written by 'tracksync sync --export' and apply it.
   The month is re-pulled so Add Activity changes can locate their source
   records in the current provider state.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 2 {
				return fmt.Errorf("expected two arguments: <changes-file> <YYYY-MM>")
			}
			path := args.Get(0)
			period := args.Get(1)

			changes, err := loadChanges(path)
			if err != nil {
				return err
			}
			if len(changes) == 0 {
				fmt.Println(ui.Dim("Change file is empty; nothing to apply"))
				return nil
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			reg := buildRegistry(cfg)

			// Rebuild the correlation groups from current provider state
			// so AddActivity changes can resolve their source records.
			pulled, errs := reg.PullAll(ctx, period)
			for p, err := range errs {
				fmt.Println(ui.StatusWarning(fmt.Sprintf("%s pull failed: %v", p, err)))
			}
			grouped, _ := reconcile.ComputeChanges(pulled, cfg, period)

			applyChanges(ctx, changes, reg.Lookup(), grouped)
			return nil
		},
	}
}

// loadChanges reads an exported change file, detecting the format from the
// file extension.
func loadChanges(path string) ([]model.ActivityChange, error) {
	format := export.FormatForPath(path)
	if format == export.FormatMarkdown {
		return nil, fmt.Errorf("markdown reports cannot be applied; use a json or yaml export")
	}

	// #nosec G304 - path is provided by the user on the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open change file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return export.Load(f, format)
}
