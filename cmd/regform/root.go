package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/config"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

// errInvalidRecord marks a validate run whose record failed; the report has
// already been printed.
var errInvalidRecord = errors.New("record is invalid")

const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

type app struct {
	configPath string
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer

	// driver overrides the terminal prompt driver; tests set it.
	driver tui.PromptDriver

	cfg config.Config
	gen *orchestrator.Orchestrator
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	return a.execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errInvalidRecord):
		return exitInvalid
	default:
		fmt.Fprintf(a.stderr, "regform: %v\n", err)
		return exitError
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "regform",
		Short: "Registration form validation engine",
		Long: `regform validates registration records (email, password, age, city,
gender, terms) against a declarative rule table, renders the form as
HTML or text and runs an interactive terminal session.

Policies (touch trigger, password rules, banner duration, logging) are
read from an optional YAML file passed with --config.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML policy file (defaults apply when empty)")

	root.AddCommand(
		a.fillCmd(),
		a.validateCmd(),
		a.renderCmd(),
		a.schemaCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	options := []orchestrator.Option{
		orchestrator.WithConfig(cfg),
		orchestrator.WithLogger(cfg.Logger(a.stderr)),
	}
	if driver := a.promptDriver(); driver != nil {
		options = append(options, orchestrator.WithPromptDriver(driver))
	}
	a.gen = orchestrator.New(options...)
	return nil
}

// promptDriver keeps prompts on stderr so stdout carries only the payload.
func (a *app) promptDriver() tui.PromptDriver {
	if a.driver != nil {
		return a.driver
	}
	in, ok := a.stdin.(terminal.FileReader)
	if !ok {
		return nil
	}
	out, ok := a.stderr.(terminal.FileWriter)
	if !ok {
		return nil
	}
	return tui.NewSurveyDriverWithStdio(in, out, a.stderr)
}
