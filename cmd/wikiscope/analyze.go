package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/export"
	"github.com/poiesic/wikiscope/graph"
	"github.com/poiesic/wikiscope/search"
	"github.com/urfave/cli/v2"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Search and map how the result articles relate through shared categories and title words",
		ArgsUsage: "[terms...]",
		Action:    analyzeAction,
		Flags: append(fieldFlags(),
			&cli.IntFlag{Name: "limit", Usage: "Number of results to request (0 uses the configured default)"},
			&cli.IntFlag{Name: "max-articles", Usage: "Maximum number of articles analyzed", Value: graph.DefaultMaxArticles},
			&cli.BoolFlag{Name: "record", Usage: "Add the query to the history", Value: true},
			&cli.StringFlag{Name: "svg", Usage: "Write the drawn network to this SVG file"},
			&cli.StringFlag{Name: "export", Usage: "Write the full analysis to this JSON file"},
			&cli.BoolFlag{Name: "quiet", Usage: "Do not print progress"},
		),
	}
}

func analyzeAction(c *cli.Context) error {
	ctx, stop := interruptible(c)
	defer stop()

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	loc := locale(c)
	q, results, err := compileAndRun(ctx, c, ws,
		search.WithLimit(c.Int("limit")),
		search.WithSummaries(false),
	)
	if err != nil {
		return err
	}
	if results.Failed {
		return cli.Exit(errorStyle.Render(loc.T("search-failed", "The search could not be completed.", nil)), 1)
	}

	opts := []graph.Option{graph.WithMaxArticles(c.Int("max-articles"))}
	if !c.Bool("quiet") {
		opts = append(opts, graph.WithMonitor(graph.NewProgressMonitor(c.App.ErrWriter, loc)))
	}
	analyzer, err := ws.NewAnalyzer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	result, err := analyzer.Run(ctx, q.BrowserQuery, results.Items, loc)
	if err != nil {
		if errors.Is(err, graph.ErrMetadataFetch) {
			return cli.Exit(errorStyle.Render(err.Error()), 1)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	w := c.App.Writer
	printExplanation(w, result.Explanation)
	if result.State != graph.StateRendered {
		return nil
	}

	fmt.Fprintln(w)
	for i, node := range result.Visual {
		fmt.Fprintf(w, "%s %s %s\n",
			labelStyle.Render(fmt.Sprintf("%2d.", i+1)),
			queryStyle.Render(node.Title),
			labelStyle.Render(fmt.Sprintf("(%d / %d)", node.TotalStrength, node.ConnectionCount)))
	}

	if path := c.String("svg"); path != "" {
		if err := writeFile(w, path, func(out io.Writer) error { return graph.WriteSVG(out, result.Render) }); err != nil {
			return fmt.Errorf("failed to write SVG: %w", err)
		}
	}
	if path := c.String("export"); path != "" {
		if err := writeFile(w, path, func(out io.Writer) error { return export.WriteSnapshotJSON(out, result.Snapshot) }); err != nil {
			return fmt.Errorf("failed to export analysis: %w", err)
		}
	}
	return nil
}

func printExplanation(w io.Writer, lines []string) {
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintln(w, titleStyle.Render(line))
			continue
		}
		fmt.Fprintln(w, bullet(line))
	}
}

// writeFile writes through fn to path, or to stdout when path is "-".
func writeFile(stdout io.Writer, path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Inspect the most recent analysis",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the summary of the most recent analysis",
				Action: snapshotShowAction,
			},
			{
				Name:   "export",
				Usage:  "Write the most recent analysis as JSON",
				Action: snapshotExportAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file, - for stdout (default wiki-network-analysis-<date>.json)",
					},
				},
			},
		},
	}
}

func loadSnapshot(c *cli.Context) (*core.AnalysisSnapshot, error) {
	ws, err := openWorkspace(c)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	snapshot, err := ws.Snapshots().LoadSnapshot(c.Context)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, cli.Exit(mutedStyle.Render("No analysis stored yet."), 1)
	}
	return snapshot, nil
}

func snapshotShowAction(c *cli.Context) error {
	snapshot, err := loadSnapshot(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	s := snapshot.Summary
	fmt.Fprintln(w, titleStyle.Render(snapshot.SourceQuery))
	fmt.Fprintln(w, labelStyle.Render(snapshot.Timestamp.Local().Format(time.DateTime)))
	fmt.Fprintln(w, bullet(fmt.Sprintf("%d articles, %d connected, %d relationships",
		snapshot.ResultCount, s.ConnectedNodes, s.EdgeCount)))
	if s.Strongest != "" {
		fmt.Fprintln(w, bullet(fmt.Sprintf("%s (%d)", s.Strongest, s.StrongestScore)))
	}
	if len(s.TopCategories) > 0 {
		names := make([]string, len(s.TopCategories))
		for i, cc := range s.TopCategories {
			names[i] = fmt.Sprintf("%s (%d)", cc.Name, cc.Count)
		}
		fmt.Fprintln(w, bullet(strings.Join(names, ", ")))
	}
	return nil
}

func snapshotExportAction(c *cli.Context) error {
	snapshot, err := loadSnapshot(c)
	if err != nil {
		return err
	}

	path := c.String("output")
	if path == "" {
		path = export.SnapshotFileName(time.Now())
	}
	if err := writeFile(c.App.Writer, path, func(out io.Writer) error { return export.WriteSnapshotJSON(out, snapshot) }); err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}
	if path != "-" {
		fmt.Fprintln(c.App.Writer, path)
	}
	return nil
}
