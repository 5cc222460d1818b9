package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/poiesic/wikiscope"
	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/query"
	"github.com/poiesic/wikiscope/search"
	"github.com/urfave/cli/v2"
)

// ErrEmptyQuery is returned when the fields compile to nothing.
var ErrEmptyQuery = errors.New("query is empty")

// fieldFlags are the search option flags shared by compile, search and
// analyze. Positional arguments form the main query when --query is unset.
func fieldFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Main search terms"},
		&cli.StringFlag{Name: "phrase", Usage: "Exact phrase"},
		&cli.StringFlag{Name: "without", Usage: "Space separated words to exclude"},
		&cli.StringFlag{Name: "any", Usage: "Alternatives separated by OR (ODER for German)"},
		&cli.BoolFlag{Name: "fuzzy", Usage: "Match similar spellings of the main query"},
		&cli.BoolFlag{Name: "intitle", Usage: "Search the main query in titles only"},
		&cli.StringFlag{Name: "incategory", Usage: "Semicolon separated categories"},
		&cli.StringFlag{Name: "deepcat", Usage: "Semicolon separated categories, subcategories included"},
		&cli.StringFlag{Name: "linksto", Usage: "Pages linking to this title"},
		&cli.StringFlag{Name: "prefix", Usage: "Title prefix"},
		&cli.StringFlag{Name: "insource", Usage: "Text in the page source"},
		&cli.StringFlag{Name: "hastemplate", Usage: "Template used by the page"},
		&cli.StringSliceFlag{Name: "filetype", Usage: "File types (bitmap, drawing, audio, video, office, multimedia, 3d)"},
		&cli.Int64Flag{Name: "min-size", Usage: "Minimum file size in bytes"},
		&cli.Int64Flag{Name: "max-size", Usage: "Maximum file size in bytes"},
		&cli.StringFlag{Name: "after", Usage: "Edited after this date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "before", Usage: "Edited before this date (YYYY-MM-DD)"},
		&cli.IntSliceFlag{Name: "ns", Usage: "Namespace ids to search"},
	}
}

func fieldSetFromFlags(c *cli.Context) (core.FieldSet, error) {
	mainQuery := c.String("query")
	if mainQuery == "" {
		mainQuery = strings.Join(c.Args().Slice(), " ")
	}

	fs := core.FieldSet{
		MainQuery:    mainQuery,
		ExactPhrase:  c.String("phrase"),
		WithoutWords: c.String("without"),
		AnyWords:     c.String("any"),
		Fuzzy:        c.Bool("fuzzy"),
		InTitle:      c.Bool("intitle"),
		InCategory:   c.String("incategory"),
		DeepCategory: c.String("deepcat"),
		LinksTo:      c.String("linksto"),
		Prefix:       c.String("prefix"),
		InSource:     c.String("insource"),
		HasTemplate:  c.String("hastemplate"),
		FileSizeMin:  c.Int64("min-size"),
		FileSizeMax:  c.Int64("max-size"),
		Namespaces:   c.IntSlice("ns"),
	}

	var err error
	if fs.FileTypes, err = core.ParseFileTypes(c.StringSlice("filetype")...); err != nil {
		return core.FieldSet{}, err
	}
	if fs.DateAfter, err = core.ParseDate(c.String("after")); err != nil {
		return core.FieldSet{}, fmt.Errorf("invalid --after date: %w", err)
	}
	if fs.DateBefore, err = core.ParseDate(c.String("before")); err != nil {
		return core.FieldSet{}, fmt.Errorf("invalid --before date: %w", err)
	}

	// compilation accepts inconsistent bounds; point them out anyway
	if err := core.ValidateFieldSet(&fs); err != nil {
		slog.Warn("search options are inconsistent", "err", err)
	}
	return fs, nil
}

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "Compile search options into a CirrusSearch query",
		ArgsUsage: "[terms...]",
		Action:    compileAction,
		Flags: append(fieldFlags(),
			&cli.BoolFlag{Name: "json", Usage: "Print the compiled query as JSON"},
			&cli.BoolFlag{Name: "copy", Usage: "Copy the browser query to the clipboard"},
			&cli.BoolFlag{Name: "record", Usage: "Add the query to the history"},
		),
	}
}

func compileAction(c *cli.Context) error {
	fs, err := fieldSetFromFlags(c)
	if err != nil {
		return err
	}
	loc := locale(c)
	q := query.NewCompiler().Compile(fs, loc)

	if c.Bool("copy") && q.BrowserQuery != "" {
		if err := clipboard.WriteAll(q.BrowserQuery); err != nil {
			return fmt.Errorf("failed to copy query to clipboard: %w", err)
		}
	}

	if c.Bool("record") {
		ws, err := openWorkspace(c)
		if err != nil {
			return err
		}
		defer ws.Close()
		if _, err := ws.Record(c.Context, fs, q); err != nil {
			return fmt.Errorf("failed to record query: %w", err)
		}
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	}
	printQuery(c.App.Writer, q, loc.T("explanation-heading", "How your query is built:", nil))
	return nil
}

func printQuery(w io.Writer, q core.CompiledQuery, heading string) {
	if q.IsEmpty() {
		fmt.Fprintln(w, mutedStyle.Render("(empty query)"))
		return
	}
	fmt.Fprintln(w, labelStyle.Render("Query:   ")+queryStyle.Render(q.BrowserQuery))
	if q.APIQuery != q.BrowserQuery {
		fmt.Fprintln(w, labelStyle.Render("API:     ")+q.APIQuery)
	}
	fmt.Fprintln(w, labelStyle.Render("Open:    ")+q.SearchURL())
	if len(q.Explanation) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render(heading))
	for _, line := range q.Explanation {
		fmt.Fprintln(w, bullet(line))
	}
}

// interruptible returns a context cancelled by Ctrl-C.
func interruptible(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt)
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run a search and list the results",
		ArgsUsage: "[terms...]",
		Action:    searchAction,
		Flags: append(fieldFlags(),
			&cli.IntFlag{Name: "limit", Usage: "Number of results to request (0 uses the configured default)"},
			&cli.BoolFlag{Name: "summaries", Usage: "Fetch an introduction for each result", Value: true},
			&cli.BoolFlag{Name: "record", Usage: "Add the query to the history", Value: true},
			&cli.BoolFlag{Name: "json", Usage: "Print the results as JSON"},
		),
	}
}

// compileAndRun compiles the flags, records the query when asked and
// runs the search.
func compileAndRun(ctx context.Context, c *cli.Context, ws *wikiscope.Workspace, opts ...search.Option) (core.CompiledQuery, *search.Results, error) {
	fs, err := fieldSetFromFlags(c)
	if err != nil {
		return core.CompiledQuery{}, nil, err
	}
	q := ws.Compile(fs, c.String("lang"))
	if q.IsEmpty() {
		return q, nil, ErrEmptyQuery
	}

	if c.Bool("record") {
		if _, err := ws.Record(ctx, fs, q); err != nil {
			return q, nil, fmt.Errorf("failed to record query: %w", err)
		}
	}

	searcher, err := ws.NewSearcher(opts...)
	if err != nil {
		return q, nil, fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	results, err := searcher.Search(ctx, q)
	if err != nil {
		return q, nil, fmt.Errorf("search interrupted: %w", err)
	}
	return q, results, nil
}

func searchAction(c *cli.Context) error {
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
		search.WithSummaries(c.Bool("summaries")),
	)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if results.Failed {
		slog.Debug("search failed", "err", results.Err)
		return cli.Exit(errorStyle.Render(loc.T("search-failed", "The search could not be completed.", nil)), 1)
	}

	if c.Bool("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results.Items)
	}

	fmt.Fprintln(w, labelStyle.Render("Query:   ")+queryStyle.Render(q.BrowserQuery))
	if results.IsEmpty() {
		fmt.Fprintln(w, mutedStyle.Render(loc.T("search-no-results", "No results found.", nil)))
		return nil
	}
	fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("%d / %d", len(results.Items), results.TotalHits)))
	fmt.Fprintln(w)

	unavailable := loc.T("summary-unavailable", search.SummaryUnavailable, nil)
	for i, item := range results.Items {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%3d.", i+1)), titleStyle.Render(item.Title))
		fmt.Fprintln(w, "     "+labelStyle.Render(item.URL))
		switch {
		case item.Summary == search.SummaryUnavailable:
			fmt.Fprintln(w, "     "+mutedStyle.Render(unavailable))
		case item.Summary != "":
			fmt.Fprintln(w, "     "+item.Summary)
		}
	}
	return nil
}
