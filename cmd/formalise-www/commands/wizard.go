package commands

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/alecthomas/kingpin/v2"

	"github.com/goliatone/go-formalise/internal/log"
	"github.com/goliatone/go-formalise/internal/storage/sqlite"
	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/gallery"
	"github.com/goliatone/go-formalise/pkg/renderers/tui"
	"github.com/goliatone/go-formalise/pkg/submission"
	"github.com/goliatone/go-formalise/pkg/validation"
)

type WizardCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	example string
	format  string
	persist bool
}

// NewWizardCommand returns the wizard command.
func NewWizardCommand(rootCmd *RootCommand, app *kingpin.Application) *WizardCommand {
	c := &WizardCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("wizard", "Fill an example form interactively in the terminal.")
	c.Cmd.Arg("example", "Example id.").Required().EnumVar(&c.example, gallery.IDs()...)
	c.Cmd.Flag("format", "Output format of the collected values.").Default(string(tui.OutputFormatPrettyText)).
		EnumVar(&c.format, string(tui.OutputFormatJSON), string(tui.OutputFormatFormURLEncoded), string(tui.OutputFormatPrettyText))
	c.Cmd.Flag("persist", "Store the submission in the SQLite database.").Default("true").BoolVar(&c.persist)

	return c
}

func (c WizardCommand) Name() string { return c.Cmd.FullCommand() }

func (c WizardCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger.WithValues(log.Kv{"example": c.example})

	def, err := gallery.Lookup(c.example)
	if err != nil {
		return err
	}

	var store submission.Store = submission.NewMemoryStore()
	if c.persist {
		sq, err := sqlite.NewStore(ctx, sqlite.StoreConfig{
			DBPath: c.rootCmd.DBPath,
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("could not create submission store: %w", err)
		}
		defer sq.Close()
		store = sq
	}

	recorder := submission.NewRecorder(store)
	ctrl, err := form.New(def,
		form.WithValidator(validation.NewSchemaValidator(def)),
		form.WithSubmit(recorder.SubmitFunc(def, func(s *submission.Submission) {
			logger.WithValues(log.Kv{"submission": s.ID}).Infof("Submission stored")
		})),
	)
	if err != nil {
		return fmt.Errorf("could not create form: %w", err)
	}

	options := []tui.Option{tui.WithOutputFormat(tui.OutputFormat(c.format))}
	if stdio, ok := c.stdio(); ok {
		options = append(options, tui.WithStdio(stdio))
	}
	renderer, err := tui.New(options...)
	if err != nil {
		return fmt.Errorf("could not create renderer: %w", err)
	}

	out, err := renderer.Run(ctx, ctrl)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.rootCmd.Stdout, string(out))
	return err
}

// stdio reports the root streams when they are terminals survey can drive.
func (c WizardCommand) stdio() (terminal.Stdio, bool) {
	in, inOK := c.rootCmd.Stdin.(terminal.FileReader)
	out, outOK := c.rootCmd.Stdout.(terminal.FileWriter)
	if !inOK || !outOK {
		return terminal.Stdio{}, false
	}
	return terminal.Stdio{In: in, Out: out, Err: c.rootCmd.Stderr}, true
}
