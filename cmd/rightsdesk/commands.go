package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/rightsdesk/api"
	"github.com/poiesic/rightsdesk/catalog"
	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/scenario"
	"github.com/poiesic/rightsdesk/search"
)

func catalogCategories() []string {
	return catalog.Categories
}

func parseIDArg(c *cli.Context, index int) (core.ID, error) {
	raw := c.Args().Get(index)
	if raw == "" {
		return 0, fmt.Errorf("missing id argument")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return core.ID(id), nil
}

func seedCommand(c *cli.Context) error {
	cfg := appConfig(c)

	desk, err := openDesk(c, false)
	if err != nil {
		return err
	}
	defer desk.Close()

	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		batchSize = cfg.Catalog.BatchSize
	}
	policy := catalog.DefaultRetryPolicy
	policy.MaxAttempts = c.Int("max-retries")

	importer, err := desk.NewImporter(
		catalog.WithBatchSize(batchSize),
		catalog.WithRetryPolicy(policy),
		catalog.WithProgress(c.App.ErrWriter),
	)
	if err != nil {
		return err
	}

	var stats *catalog.Stats
	if file := c.String("file"); file != "" {
		stats, err = importer.ImportFile(c.Context, file)
	} else {
		stats, err = importer.Import(c.Context, catalog.Default())
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d rights guides and %d templates in %d batches\n",
		stats.Rights, stats.Templates, stats.Batches)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required")
	}

	desk, err := openDesk(c, true)
	if err != nil {
		return err
	}
	defer desk.Close()

	session, err := desk.NewSession(nil, search.WithSessionPoolSize(appConfig(c).Search.SessionPoolSize))
	if err != nil {
		return err
	}
	defer session.Release()

	results, err := session.Submit(c.Context, query)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Found %d results\n", len(results))
	for i, result := range results {
		fmt.Fprintf(w, "%d: [%s %d] %s (%d%% match)\n", i+1, result.Kind, result.Id, result.Title, search.MatchPercentage(result))
		if result.Summary != "" {
			fmt.Fprintf(w, "   %s\n", result.Summary)
		}
	}

	session.Wait()
	if advisory := session.Snapshot().Advisory; advisory != "" {
		fmt.Fprintf(w, "\n%s\n", advisory)
	}
	return nil
}

func suggestionsCommand(c *cli.Context) error {
	for _, s := range search.Suggestions {
		fmt.Fprintln(c.App.Writer, s)
	}
	return nil
}

func browseCommand(c *cli.Context) error {
	desk, err := openDesk(c, true)
	if err != nil {
		return err
	}
	defer desk.Close()

	entries, err := desk.ContentRepository().RightsEntries(c.Context)
	if err != nil {
		return err
	}
	for _, entry := range catalog.Browse(entries, c.String("category"), c.String("query")) {
		fmt.Fprintf(c.App.Writer, "%d: %s [%s, %s]\n   %s\n", entry.Id, entry.Title, entry.Category, entry.ReadTime, entry.Summary)
	}
	return nil
}

func templatesCommand(c *cli.Context) error {
	desk, err := openDesk(c, true)
	if err != nil {
		return err
	}
	defer desk.Close()

	lib, err := desk.NewLibrary()
	if err != nil {
		return err
	}
	templates, err := desk.ContentRepository().TemplateEntries(c.Context)
	if err != nil {
		return err
	}
	for _, tmpl := range templates {
		unlocked, err := lib.IsTemplateUnlocked(c.Context, tmpl)
		if err != nil {
			return err
		}
		state := "free"
		switch {
		case tmpl.Gated() && unlocked:
			state = "unlocked"
		case tmpl.Gated():
			state = fmt.Sprintf("locked, %g", tmpl.Price)
		}
		fmt.Fprintf(c.App.Writer, "%d: %s [%s] (%s)\n", tmpl.Id, tmpl.Title, tmpl.Category, state)
	}
	return nil
}

func saveCommand(c *cli.Context) error {
	kind, err := core.ParseKind(c.Args().Get(0))
	if err != nil {
		return err
	}
	id, err := parseIDArg(c, 1)
	if err != nil {
		return err
	}

	desk, err := openDesk(c, true)
	if err != nil {
		return err
	}
	defer desk.Close()

	lib, err := desk.NewLibrary()
	if err != nil {
		return err
	}

	var added bool
	if kind == core.KindRights {
		added, err = lib.SaveRights(c.Context, id)
	} else {
		added, err = lib.SaveTemplate(c.Context, id)
	}
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(c.App.Writer, "Saved %s %d\n", kind, id)
	} else {
		fmt.Fprintf(c.App.Writer, "%s %d was already saved\n", kind, id)
	}
	return nil
}

func unsaveCommand(c *cli.Context) error {
	kind, err := core.ParseKind(c.Args().Get(0))
	if err != nil {
		return err
	}
	id, err := parseIDArg(c, 1)
	if err != nil {
		return err
	}

	desk, err := openDesk(c, true)
	if err != nil {
		return err
	}
	defer desk.Close()

	lib, err := desk.NewLibrary()
	if err != nil {
		return err
	}
	if err := lib.Remove(c.Context, kind, id); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Removed %s %d\n", kind, id)
	return nil
}

func savedCommand(c *cli.Context) error {
	desk, err := openDesk(c, true)
	if err != nil {
		return err
	}
	defer desk.Close()

	lib, err := desk.NewLibrary()
	if err != nil {
		return err
	}
	saved, err := lib.Saved(c.Context)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Rights guides (%d)\n", len(saved.Rights))
	for _, entry := range saved.Rights {
		fmt.Fprintf(w, "  %d: %s\n", entry.Id, entry.Title)
	}
	fmt.Fprintf(w, "Templates (%d)\n", len(saved.Templates))
	for _, tmpl := range saved.Templates {
		fmt.Fprintf(w, "  %d: %s\n", tmpl.Id, tmpl.Title)
	}
	return nil
}

func unlockCommand(c *cli.Context) error {
	id, err := parseIDArg(c, 0)
	if err != nil {
		return err
	}

	desk, err := openDesk(c, true)
	if err != nil {
		return err
	}
	defer desk.Close()

	lib, err := desk.NewLibrary()
	if err != nil {
		return err
	}
	unlock, err := lib.Unlock(c.Context, id, c.String("reference"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Template %d unlocked (receipt %d, reference %s)\n", unlock.TemplateId, unlock.Id, unlock.Reference)
	return nil
}

func exportCommand(c *cli.Context) error {
	id, err := parseIDArg(c, 0)
	if err != nil {
		return err
	}

	desk, err := openDesk(c, true)
	if err != nil {
		return err
	}
	defer desk.Close()

	lib, err := desk.NewLibrary()
	if err != nil {
		return err
	}
	download, err := lib.Export(c.Context, id)
	if err != nil {
		return err
	}

	path := filepath.Join(c.String("out"), download.Filename)
	if err := os.WriteFile(path, []byte(download.Content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

func scenarioListCommand(c *cli.Context) error {
	for _, name := range scenario.Names() {
		g := scenario.Lookup(name)
		fmt.Fprintf(c.App.Writer, "%s: %s\n   %s\n", g.Name, g.Title, g.Description)
	}
	return nil
}

func withTracker(c *cli.Context, fn func(ctx context.Context, tracker *scenario.Tracker) (*scenario.Checklist, error)) error {
	desk, err := openDesk(c, false)
	if err != nil {
		return err
	}
	defer desk.Close()

	tracker, err := desk.NewTracker()
	if err != nil {
		return err
	}
	checklist, err := fn(c.Context, tracker)
	if err != nil {
		return err
	}
	printChecklist(c, checklist)
	return nil
}

func scenarioShowCommand(c *cli.Context) error {
	return withTracker(c, func(ctx context.Context, tracker *scenario.Tracker) (*scenario.Checklist, error) {
		return tracker.Load(ctx, c.Args().First())
	})
}

func scenarioToggleCommand(c *cli.Context) error {
	step := c.Args().Get(1)
	if step == "" {
		return fmt.Errorf("a step id is required")
	}
	return withTracker(c, func(ctx context.Context, tracker *scenario.Tracker) (*scenario.Checklist, error) {
		return tracker.Toggle(ctx, c.Args().First(), step)
	})
}

func scenarioPhaseCommand(c *cli.Context) error {
	phase, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid phase %q", c.Args().Get(1))
	}
	return withTracker(c, func(ctx context.Context, tracker *scenario.Tracker) (*scenario.Checklist, error) {
		return tracker.SetPhase(ctx, c.Args().First(), phase-1)
	})
}

func printChecklist(c *cli.Context, checklist *scenario.Checklist) {
	w := c.App.Writer
	g := checklist.Guide
	overall := checklist.OverallProgress()
	fmt.Fprintf(w, "%s\n%s\nOverall: %d/%d (%d%%)\n", g.Title, g.Description, overall.Completed, overall.Total, overall.Percent)

	for i, phase := range g.Phases {
		marker := " "
		if i == checklist.CurrentPhase() {
			marker = ">"
		}
		p, _ := checklist.PhaseProgress(i)
		fmt.Fprintf(w, "\n%s Phase %d: %s (%d%%)\n", marker, i+1, phase.Title, p.Percent)
		if i != checklist.CurrentPhase() {
			continue
		}
		for _, step := range phase.Steps {
			box := "[ ]"
			if checklist.IsCompleted(step.Id) {
				box = "[x]"
			}
			fmt.Fprintf(w, "    %s %s (%s) %s, %s priority\n", box, step.Id, step.Timeframe, step.Title, step.Priority)
		}
	}

	fmt.Fprintln(w, "\nResources:")
	for _, r := range g.Resources {
		target := r.URL
		if target == "" {
			target = "template " + r.Template
		}
		fmt.Fprintf(w, "  %s: %s\n", r.Title, target)
	}
}

func serveCommand(c *cli.Context) error {
	cfg := appConfig(c)
	port := c.Int("port")
	if port <= 0 {
		port = cfg.Server.Port
	}

	desk, err := openDesk(c, true)
	if err != nil {
		return err
	}
	defer desk.Close()

	searcher, err := desk.NewSearcher()
	if err != nil {
		return err
	}
	lib, err := desk.NewLibrary()
	if err != nil {
		return err
	}
	tracker, err := desk.NewTracker()
	if err != nil {
		return err
	}
	srv, err := api.NewServer(desk.ContentRepository(), searcher, lib, tracker)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, fmt.Sprintf(":%d", port)); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
