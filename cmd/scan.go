package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sw33tLie/diskdiff/internal/utils"
	"github.com/sw33tLie/diskdiff/pkg/config"
	"github.com/sw33tLie/diskdiff/pkg/events"
	"github.com/sw33tLie/diskdiff/pkg/report"
	"github.com/sw33tLie/diskdiff/pkg/scan"
	"github.com/sw33tLie/diskdiff/pkg/trigger"
)

var kindFlags = map[string]events.Kind{
	"born":     events.Born,
	"modified": events.Modified,
	"changed":  events.Changed,
	"accessed": events.Accessed,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	dirs, _ := cmd.Flags().GetStringArray("dir")
	cfg, err = cfg.WithRoots(dirs)
	if err != nil {
		return err
	}
	if err := config.ValidateRoots(cfg.Roots); err != nil {
		return err
	}

	kinds := kindsFromFlags(cmd)
	dodge, _ := cmd.Flags().GetStringArray("dodge")
	noColor, _ := cmd.Flags().GetBool("no-color")
	manual := trigger.IsManual(args)

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return fmt.Errorf("could not create log dir: %w", err)
	}
	logPath := report.LogPath(cfg.LogDir, args, manual, time.Now())

	utils.Log.Debugf("roots=%v kinds=%s dodge=%v log=%s", cfg.Roots, kinds, dodge, logPath)

	sc := &scan.Context{
		Config: cfg,
		Kinds:  kinds,
		Dodge:  utils.UniqueStrings(dodge),
		Log:    utils.Log,
		OnIndexed: func(n int) {
			report.Progress(os.Stdout, fmt.Sprintf("Categorized files: %s\n", report.FormatCount(n)))
		},
	}

	out, err := scan.Run(cmd.Context(), sc, triggerFor(args, manual))
	if err != nil {
		return err
	}
	utils.Log.Debugf("window %s, %d files examined, %d dirs pruned, %d unreadable",
		out.Window.Duration(), out.Stats.Files, out.Stats.SkippedDirs, out.Stats.Unreadable)

	lock := utils.NewRunLock(logPath)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			utils.Log.Warnf("Could not release lock: %v", err)
		}
	}()

	if err := report.WriteLog(logPath, &out.Result); err != nil {
		utils.Log.Errorf("Could not write %s: %v", logPath, err)
	}

	renderer := report.Renderer{Color: !noColor && trigger.IsTerminal(os.Stdout)}
	return renderer.Terminal(os.Stdout, &out.Result)
}

func kindsFromFlags(cmd *cobra.Command) events.KindSet {
	kinds := events.DefaultKinds()
	for name, kind := range kindFlags {
		if toggled, _ := cmd.Flags().GetBool(name); toggled {
			kinds = kinds.Toggle(kind)
		}
	}
	return kinds
}

func triggerFor(args []string, manual bool) scan.Trigger {
	if manual {
		return func(ctx context.Context) error {
			report.Progress(os.Stdout, "Press enter when ready to scan...")
			if err := trigger.WaitForKeypress(os.Stdin); err != nil {
				return fmt.Errorf("waiting for keypress: %w", err)
			}
			report.Progress(os.Stdout, "Indexing files...")
			return nil
		}
	}

	return func(ctx context.Context) error {
		code, err := trigger.RunCommand(ctx, args, trigger.OSStdio())
		if err != nil {
			return err
		}
		if code != 0 {
			fmt.Printf("\n%sSubprocess failed with exit code:%s %d\n\n", report.Red, report.Reset, code)
		}
		report.Progress(os.Stdout, "Indexing files...")
		return nil
	}
}
