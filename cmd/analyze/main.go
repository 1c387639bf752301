// Command analyze checks and summarizes the board configurations in the
// project's configs directory. The validate subcommand runs the same
// validation the server applies at load time; report prints board sizes,
// spawn rate, label pool and how long an idle board takes to fill up.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/fibbox/game/engine"
)

var (
	styleOK     = color.Style{color.FgGreen, color.OpBold}
	styleFail   = color.Style{color.FgRed, color.OpBold}
	styleHeader = color.Style{color.FgCyan, color.OpBold}
	styleSubtle = color.Style{color.FgGray}
)

// Report is the analysis of one configuration file.
type Report struct {
	File       string
	Name       string
	Columns    int
	Rows       int
	Cells      int
	TickPeriod time.Duration
	Labels     []int64
	Err        error
}

// Capacity is the number of boxes the board can hold next to the player.
func (r Report) Capacity() int {
	if r.Cells == 0 {
		return 0
	}
	return r.Cells - 1
}

// FillTime is how long an untouched board takes until spawning stops.
func (r Report) FillTime() time.Duration {
	return time.Duration(r.Capacity()) * r.TickPeriod
}

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, styleFail.Sprint(err.Error()))
		os.Exit(1)
	}
}

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Value:   "configs",
		Usage:   "directory holding board configurations",
		Sources: cli.EnvVars("CONFIG_DIR"),
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "validate and summarize board configurations",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "validate configuration files",
				ArgsUsage: "[file...]",
				Flags:     []cli.Flag{dirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					files, err := configFiles(cmd.String("dir"), cmd.Args().Slice())
					if err != nil {
						return err
					}
					if invalid := validateFiles(w, files); invalid > 0 {
						return fmt.Errorf("%d of %d configs invalid", invalid, len(files))
					}
					return nil
				},
			},
			{
				Name:      "report",
				Usage:     "print grid, timing and label details",
				ArgsUsage: "[file...]",
				Flags:     []cli.Flag{dirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					files, err := configFiles(cmd.String("dir"), cmd.Args().Slice())
					if err != nil {
						return err
					}
					for _, file := range files {
						printReport(w, analyzeConfig(file))
					}
					return nil
				},
			},
		},
	}
}

// configFiles returns the explicit files if any were given, otherwise every
// JSON or YAML file in dir sorted by name.
func configFiles(dir string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no configuration files in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

func analyzeConfig(path string) Report {
	report := Report{File: filepath.Base(path)}

	config, err := engine.LoadGameConfig(path)
	if err != nil {
		report.Err = err
		return report
	}

	grid, err := engine.NewGrid(config.Height, config.Width, config.CellSize)
	if err != nil {
		report.Err = err
		return report
	}

	report.Name = config.Name
	report.Columns = grid.Columns()
	report.Rows = grid.Rows()
	report.Cells = grid.Size()
	report.TickPeriod = config.TickPeriod()
	report.Labels = engine.Fibonacci(config.LabelPoolSize())
	return report
}

// validateFiles prints one line per file and returns the number of invalid ones.
func validateFiles(w io.Writer, files []string) int {
	invalid := 0
	for _, file := range files {
		report := analyzeConfig(file)
		if report.Err != nil {
			invalid++
			fmt.Fprintf(w, "%s %s: %v\n", styleFail.Sprint("FAIL"), report.File, report.Err)
			continue
		}
		fmt.Fprintf(w, "%s %s (%s)\n", styleOK.Sprint(" OK "), report.File, report.Name)
	}

	fmt.Fprintf(w, "\n%d valid, %d invalid\n", len(files)-invalid, invalid)
	return invalid
}

func printReport(w io.Writer, r Report) {
	fmt.Fprintln(w, styleHeader.Sprintf("=== %s ===", r.File))
	if r.Err != nil {
		fmt.Fprintf(w, "%s %v\n\n", styleFail.Sprint("invalid:"), r.Err)
		return
	}

	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Grid: %d x %d (%d cells)\n", r.Columns, r.Rows, r.Cells)
	fmt.Fprintf(w, "Spawn every: %s\n", r.TickPeriod)
	fmt.Fprintf(w, "Labels: %s\n", labelRange(r.Labels))
	fmt.Fprintf(w, "Capacity: %d boxes, full after %s untouched\n", r.Capacity(), r.FillTime())
	fmt.Fprintln(w, styleSubtle.Sprint("---"))
}

func labelRange(labels []int64) string {
	switch len(labels) {
	case 0:
		return "none"
	case 1:
		return fmt.Sprintf("%d", labels[0])
	}
	return fmt.Sprintf("%d..%d (%d numbers)", labels[0], labels[len(labels)-1], len(labels))
}
