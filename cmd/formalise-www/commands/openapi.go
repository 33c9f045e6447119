package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formalise/pkg/gallery"
	pkgopenapi "github.com/goliatone/go-formalise/pkg/openapi"
)

type OpenAPICommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewOpenAPICommand returns the openapi command.
func NewOpenAPICommand(rootCmd *RootCommand, app *kingpin.Application) *OpenAPICommand {
	c := &OpenAPICommand{rootCmd: rootCmd}

	c.Cmd = app.Command("openapi", "Print the OpenAPI document of the example submission endpoints.")
	c.Cmd.Flag("format", "Output format.").Default("json").EnumVar(&c.format, "json", "yaml")

	return c
}

func (c OpenAPICommand) Name() string { return c.Cmd.FullCommand() }

func (c OpenAPICommand) Run(ctx context.Context) error {
	doc, err := pkgopenapi.Document(ctx, pkgopenapi.Info{Title: "Formalise examples", Version: Version}, gallery.Forms()...)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode document: %w", err)
	}

	if c.format == "yaml" {
		// openapi3 types only implement JSON marshalers.
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("could not decode document: %w", err)
		}
		if data, err = yaml.Marshal(generic); err != nil {
			return fmt.Errorf("could not encode document: %w", err)
		}
	}

	_, err = fmt.Fprintln(c.rootCmd.Stdout, string(data))
	return err
}
