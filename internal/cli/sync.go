package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"tracksync/internal/config"
	"tracksync/internal/correlate"
	"tracksync/internal/export"
	"tracksync/internal/model"
	"tracksync/internal/progress"
	"tracksync/internal/provider"
	"tracksync/internal/reconcile"
	"tracksync/internal/ui"
	"tracksync/internal/ui/tui"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Reconcile one month of activities across providers",
		UsageText: "tracksync sync [options] <YYYY-MM>",
		Description: `Pull activities from every configured provider for the given month,
   correlate them by date and distance, and reconcile names, equipment,
   and spreadsheet metadata against the authoritative provider.

   Examples:
     tracksync sync 2025-05
     tracksync sync --dry-run 2025-05
     tracksync sync --tui 2025-05`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Preview changes without modifying providers",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Review changes in an interactive list instead of per-change prompts",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Apply every change without prompting",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "Write proposed changes to a file instead of applying (format from extension)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			period, err := periodArg(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if len(cfg.PriorityOrder()) == 0 {
				return fmt.Errorf("no providers enabled; run 'tracksync config init' and enable providers")
			}

			reg := buildRegistry(cfg)
			providers := reg.Providers()
			if len(providers) == 0 {
				return fmt.Errorf("no pullable providers configured")
			}

			bar := progress.Simple(int64(len(providers)), "Pulling "+period)
			pulled, errs := pullWithProgress(ctx, reg, period, bar)
			_ = bar.Finish()
			for p, err := range errs {
				fmt.Println(ui.StatusWarning(fmt.Sprintf("%s pull failed: %v", p, err)))
			}

			grouped, changes := reconcile.ComputeChanges(pulled, cfg, period)

			renderComparison(os.Stdout, grouped, cfg)

			if len(changes) == 0 {
				fmt.Println(ui.StatusSuccess("Everything in sync for " + period))
				return nil
			}

			fmt.Printf("\n%s\n", ui.Header(fmt.Sprintf("%d proposed change(s):", len(changes))))
			for _, c := range changes {
				fmt.Printf("  %s\n", c)
			}

			if path := cmd.String("export"); path != "" {
				if err := exportChanges(path, period, changes); err != nil {
					return err
				}
				fmt.Println(ui.StatusSuccess("Wrote " + path))
				return nil
			}

			if cmd.Bool("dry-run") {
				fmt.Println(ui.Dim("\nDry run: no changes applied"))
				return nil
			}

			accepted := changes
			switch {
			case cmd.Bool("yes"):
				// Apply everything as computed.
			case cmd.Bool("tui"):
				result, err := tui.ReviewChanges(changes, period)
				if err != nil {
					return fmt.Errorf("change review failed: %w", err)
				}
				if result.Action != tui.ReviewActionApply {
					fmt.Println(ui.Dim("No changes applied"))
					return nil
				}
				accepted = result.Accepted
			default:
				accepted = promptChanges(os.Stdin, os.Stdout, changes)
			}

			if len(accepted) == 0 {
				fmt.Println(ui.Dim("No changes applied"))
				return nil
			}

			applyChanges(ctx, accepted, reg.Lookup(), grouped)
			return nil
		},
	}
}

// exportChanges writes the proposed changes to a file for later review or
// application with 'tracksync apply'.
func exportChanges(path, period string, changes []model.ActivityChange) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	opts := export.DefaultOptions()
	opts.Format = export.FormatForPath(path)
	opts.Period = period
	return export.New(opts).Export(changes, f)
}

// promptChanges asks y/n for each proposed change and returns the accepted
// subset. An unreadable answer stops the prompt and skips the rest.
func promptChanges(in io.Reader, out io.Writer, changes []model.ActivityChange) []model.ActivityChange {
	reader := bufio.NewReader(in)
	var accepted []model.ActivityChange

	fmt.Fprintln(out)
	for i, c := range changes {
		fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(changes), c)
		fmt.Fprint(out, "Apply? [y/N]: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintln(out, ui.Dim("\nInput closed; skipping remaining changes"))
			break
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer == "y" || answer == "yes" {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

// applyChanges applies each accepted change and reports the outcome.
func applyChanges(ctx context.Context, accepted []model.ActivityChange, lookup provider.Lookup, grouped correlate.Groups) {
	applied, failed := 0, 0
	for _, c := range accepted {
		ok, message := reconcile.Apply(ctx, c, lookup, grouped)
		if ok {
			applied++
			fmt.Println(ui.StatusSuccess(message))
		} else {
			failed++
			fmt.Println(ui.StatusError(message))
		}
	}
	fmt.Printf("\n%s %d applied, %d failed\n", ui.Bold("Result:"), applied, failed)
}

// renderComparison prints the activity comparison table: one row per
// correlation group, one column per enabled provider. Green cells hold the
// authoritative name, yellow marks a provider missing the activity, red a
// name that diverges from the authority.
func renderComparison(out io.Writer, grouped correlate.Groups, cfg *config.Config) {
	priority := cfg.PriorityOrder()
	if len(grouped) == 0 {
		fmt.Fprintln(out, ui.Dim("No correlated activities"))
		return
	}

	const cellWidth = 24

	fmt.Fprintf(out, "%-18s", ui.Header("Activity"))
	for _, p := range priority {
		fmt.Fprintf(out, " %s", ui.Header(pad(string(p), cellWidth)))
	}
	fmt.Fprintln(out)

	for _, key := range grouped.SortedKeys() {
		group := grouped[key]
		byProvider := make(map[model.Provider]model.Activity, len(group))
		for _, a := range group {
			byProvider[a.Provider] = a
		}
		authProvider, authName, ok := reconcile.NameAuthority(group, priority)

		fmt.Fprintf(out, "%-18s", key)
		for _, p := range priority {
			a, present := byProvider[p]
			var cell string
			switch {
			case !present:
				cell = ui.CellMissing(pad("missing", cellWidth))
			case ok && p == authProvider:
				cell = ui.CellAuth(pad(a.Name, cellWidth))
			case ok && authName != "" && a.Name != authName:
				cell = ui.CellWrong(pad(a.Name, cellWidth))
			default:
				cell = pad(a.Name, cellWidth)
			}
			fmt.Fprintf(out, " %s", cell)
		}
		fmt.Fprintln(out)
	}
}

// pad truncates or right-pads a value to the fixed cell width so the
// background highlight covers the whole cell. Truncation is rune-based:
// free-text activity names must never be split mid-character.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-len(runes))
}
