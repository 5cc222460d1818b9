package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/export"
	"github.com/poiesic/wikiscope/i18n"
	"github.com/poiesic/wikiscope/storage"
	"github.com/urfave/cli/v2"
)

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Manage recorded queries",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List recorded queries, favorites first",
				Action: historyListAction,
			},
			{
				Name:      "show",
				Usage:     "Show a recorded query and compile its options again",
				ArgsUsage: "<id>",
				Action:    historyShowAction,
			},
			{
				Name:      "favorite",
				Usage:     "Toggle the favorite flag of a recorded query",
				ArgsUsage: "<id>",
				Action:    historyFavoriteAction,
			},
			{
				Name:      "rename",
				Usage:     "Rename a recorded query",
				ArgsUsage: "<id> <name...>",
				Action:    historyRenameAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a recorded query",
				ArgsUsage: "<id>",
				Action:    historyDeleteAction,
			},
			{
				Name:   "clear",
				Usage:  "Delete every recorded query, favorites included",
				Action: historyClearAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Confirm deletion"},
				},
			},
			{
				Name:   "export",
				Usage:  "Write the history as JSON or CSV",
				Action: historyExportAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file, - for stdout (default wiki-search-history-<date>.<format>)",
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Merge a JSON history export into the history",
				ArgsUsage: "<file>",
				Action:    historyImportAction,
			},
		},
	}
}

func parseID(c *cli.Context) (core.ID, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("entry id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entry id %q: %w", raw, err)
	}
	return core.ID(id), nil
}

// notFound turns storage.ErrNotFound into a user facing exit error.
func notFound(err error, id core.ID) error {
	if errors.Is(err, storage.ErrNotFound) {
		return cli.Exit(fmt.Sprintf("no history entry %d", id), 1)
	}
	return err
}

func printEntry(w io.Writer, e *core.HistoryEntry) {
	star := "  "
	if e.Favorite {
		star = favoriteStyle.Render("★ ")
	}
	fmt.Fprintf(w, "%s%s  %s  %s\n",
		star,
		labelStyle.Render(fmt.Sprintf("%20d", uint64(e.ID))),
		labelStyle.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
		queryStyle.Render(e.Name))
}

func historyListAction(c *cli.Context) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	entries, err := ws.History().ListEntries(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	w := c.App.Writer
	if len(entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("History is empty."))
		return nil
	}
	for _, e := range entries {
		printEntry(w, e)
	}
	return nil
}

func historyShowAction(c *cli.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	entry, err := ws.History().GetEntry(c.Context, id)
	if err != nil {
		return notFound(err, id)
	}

	w := c.App.Writer
	printEntry(w, entry)
	fmt.Fprintln(w, labelStyle.Render("URL:     ")+entry.PrimaryURL)
	fmt.Fprintln(w)

	// the stored options compile under the entry's own language edition
	lang := entry.Lang
	if lang == "" {
		lang = c.String("lang")
	}
	q := ws.Compile(entry.State, lang)
	heading := i18n.NewLocale(c.String("lang")).T("explanation-heading", "How your query is built:", nil)
	printQuery(w, q, heading)
	return nil
}

func historyFavoriteAction(c *cli.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	entry, err := ws.History().ToggleFavorite(c.Context, id)
	if err != nil {
		return notFound(err, id)
	}
	printEntry(c.App.Writer, entry)
	return nil
}

func historyRenameAction(c *cli.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	name := strings.Join(c.Args().Tail(), " ")

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	entry, err := ws.History().RenameEntry(c.Context, id, name)
	if err != nil {
		return notFound(err, id)
	}
	printEntry(c.App.Writer, entry)
	return nil
}

func historyDeleteAction(c *cli.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	if err := ws.History().DeleteEntry(c.Context, id); err != nil {
		return notFound(err, id)
	}
	return nil
}

func historyClearAction(c *cli.Context) error {
	if !c.Bool("yes") {
		return fmt.Errorf("refusing to clear the history without --yes")
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	if err := ws.History().ClearEntries(c.Context); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func historyExportAction(c *cli.Context) error {
	format := strings.ToLower(c.String("format"))
	var write func(io.Writer, []*core.HistoryEntry) error
	switch format {
	case "json":
		write = export.WriteHistoryJSON
	case "csv":
		write = export.WriteHistoryCSV
	default:
		return fmt.Errorf("invalid export format: %s (must be json or csv)", format)
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	entries, err := ws.History().ListEntries(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	path := c.String("output")
	if path == "" {
		path = export.HistoryFileName(time.Now(), format)
	}
	if err := writeFile(c.App.Writer, path, func(out io.Writer) error { return write(out, entries) }); err != nil {
		return fmt.Errorf("failed to export history: %w", err)
	}
	if path != "-" {
		fmt.Fprintln(c.App.Writer, path)
	}
	return nil
}

func historyImportAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("import file is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	entries, err := export.ReadHistoryJSON(f)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	n, err := ws.History().ImportEntries(c.Context, entries...)
	if err != nil {
		return fmt.Errorf("failed to import history: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "%d of %d entries imported\n", n, len(entries))
	return nil
}
