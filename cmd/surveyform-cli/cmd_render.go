package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-surveyform/components/address"
	"github.com/goliatone/go-surveyform/components/phone"
	"github.com/goliatone/go-surveyform/internal/httpui"
	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/engine"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/openapi"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/session"
)

var (
	renderOutput    string
	renderFormat    string
	renderOpenAPI   string
	renderOperation string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a survey form to static HTML",
	Long: `Renders the empty form to HTML for inspection or embedding. The
form spec comes from --spec, or is built from an OpenAPI document when
--openapi and --operation are given.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (stdout if empty)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "html", "output renderer")
	renderCmd.Flags().StringVar(&renderOpenAPI, "openapi", "", "OpenAPI document to derive the form from")
	renderCmd.Flags().StringVar(&renderOperation, "operation", "", "operation id in the OpenAPI document")
}

func runRender(cmd *cobra.Command, args []string) error {
	spec, err := renderSpec(cmd)
	if err != nil {
		return err
	}

	registry := component.NewRegistry()
	address.Register(registry)
	phone.Register(registry)
	eng := engine.New(engine.WithComponents(registry))
	if err := eng.CheckSpec(spec); err != nil {
		return err
	}
	form, err := eng.RenderForm(cmd.Context(), spec, spec.ID, session.NewStore())
	if err != nil {
		return err
	}

	htmlRenderer, err := html.New()
	if err != nil {
		return err
	}
	renderers := render.NewRegistry()
	renderers.MustRegister(htmlRenderer)

	renderer, err := renderers.Get(renderFormat)
	if err != nil {
		return fmt.Errorf("unknown format %q (available: %v)", renderFormat, renderers.List())
	}
	page, err := renderer.Render(cmd.Context(), form, render.Options{
		Action: "/survey",
		Theme:  httpui.DefaultTheme(),
	})
	if err != nil {
		return err
	}

	if renderOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(page))
		return nil
	}
	if err := os.WriteFile(renderOutput, page, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", renderOutput)
	return nil
}

func renderSpec(cmd *cobra.Command) (model.FormSpec, error) {
	if renderOpenAPI == "" {
		return resolveSpec()
	}
	if renderOperation == "" {
		return model.FormSpec{}, fmt.Errorf("--operation is required with --openapi")
	}
	data, err := os.ReadFile(renderOpenAPI)
	if err != nil {
		return model.FormSpec{}, fmt.Errorf("read openapi document: %w", err)
	}
	return openapi.BuildFormSpec(cmd.Context(), data, renderOperation)
}
