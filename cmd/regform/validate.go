package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	regform "github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/config"
	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/schema"
)

const contractTimeout = 10 * time.Second

type validateReport struct {
	Valid    bool                 `json:"valid"`
	Errors   []*schema.FieldError `json:"errors,omitempty"`
	Contract string               `json:"contract,omitempty"`
}

func (a *app) validateCmd() *cobra.Command {
	var contract string

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a YAML or JSON record",
		Long: `Validates a record file ("-" reads stdin) and prints a report. The
command exits with status 1 when the record is invalid.

With --contract the record is also checked against the Registration
schema of a published OpenAPI document (file path or http(s) URL).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			record, err := schema.DecodeRecord(data)
			if err != nil {
				return err
			}

			errs := a.gen.Validate(record)
			report := validateReport{Valid: errs.Empty(), Errors: errs.Sorted()}

			if contract != "" {
				if err := checkContract(cmd, contract, record); err != nil {
					if !errors.Is(err, pkgopenapi.ErrContractViolation) {
						return err
					}
					report.Valid = false
					report.Contract = err.Error()
				}
			}

			if err := a.writeReport(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.Valid {
				return errInvalidRecord
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&contract, "contract", "", "OpenAPI document holding the Registration schema")
	return cmd
}

func checkContract(cmd *cobra.Command, location string, record schema.Record) error {
	src, err := pkgopenapi.ParseSource(location)
	if err != nil {
		return err
	}
	doc, err := regform.NewLoader(pkgopenapi.WithHTTPFallback(contractTimeout)).Load(cmd.Context(), src)
	if err != nil {
		return fmt.Errorf("load contract: %w", err)
	}
	contract, err := regform.NewParser().Contract(cmd.Context(), doc)
	if err != nil {
		return err
	}
	return pkgopenapi.CheckRecord(contract, record)
}

func (a *app) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(path)
}

func (a *app) writeReport(w io.Writer, report validateReport) error {
	if a.cfg.Output == config.OutputPretty {
		if report.Valid {
			_, err := fmt.Fprintln(w, "valid")
			return err
		}
		for _, fe := range report.Errors {
			if _, err := fmt.Fprintf(w, "%s: %s (%s)\n", fe.Field, fe.Message, fe.Category); err != nil {
				return err
			}
		}
		if report.Contract != "" {
			if _, err := fmt.Fprintf(w, "contract: %s\n", report.Contract); err != nil {
				return err
			}
		}
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
