package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/goliatone/go-formalise/internal/storage/sqlite"
	"github.com/goliatone/go-formalise/pkg/gallery"
	"github.com/goliatone/go-formalise/pkg/submission"
)

type SubmissionsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	example string
	format  string
	reset   bool
}

// NewSubmissionsCommand returns the submissions command.
func NewSubmissionsCommand(rootCmd *RootCommand, app *kingpin.Application) *SubmissionsCommand {
	c := &SubmissionsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("submissions", "List stored submissions of an example, newest first.")
	c.Cmd.Arg("example", "Example id.").Required().EnumVar(&c.example, gallery.IDs()...)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.Cmd.Flag("reset", "Drop every stored submission, of all examples, before listing.").BoolVar(&c.reset)

	return c
}

func (c SubmissionsCommand) Name() string { return c.Cmd.FullCommand() }

func (c SubmissionsCommand) Run(ctx context.Context) error {
	store, err := sqlite.NewStore(ctx, sqlite.StoreConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create submission store: %w", err)
	}
	defer store.Close()

	if c.reset {
		if err := store.Reset(ctx); err != nil {
			return err
		}
	}

	subs, err := store.ListByForm(ctx, c.example)
	if err != nil {
		return fmt.Errorf("could not list submissions: %w", err)
	}

	if c.format == "json" {
		if subs == nil {
			subs = []submission.Submission{}
		}
		enc := json.NewEncoder(c.rootCmd.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(subs)
	}

	if len(subs) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(c.rootCmd.Stdout, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tFIELDS\tCREATED")
	for _, s := range subs {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.ID, len(s.Values), s.CreatedAt.Format(time.RFC3339))
	}
	return nil
}
