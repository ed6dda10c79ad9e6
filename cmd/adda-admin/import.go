package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brokeradda/adda-admin/internal/csvimport"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/repository"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:       "import <brokers|leads|properties> <file.csv>",
	Short:     "Bulk import a CSV file",
	Long:      `Upload a CSV file to the Broker Adda bulk import endpoint using the stored admin token.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{string(models.ImportBrokers), string(models.ImportLeads), string(models.ImportProperties)},
	RunE:      runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	kind := models.ImportKind(args[0])
	if !kind.Valid() {
		return fmt.Errorf("unknown import kind %q", args[0])
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	cfg, _, err := setup()
	if err != nil {
		return err
	}
	sess := newSession(cfg)
	imports := service.NewImports(repository.NewImportRepository(newClient(cfg, sess)), service.Settings{})

	tab, err := imports.Upload(cmd.Context(), kind, filepath.Base(args[1]), data)
	if errors.Is(err, csvimport.ErrInvalidFile) {
		return errors.New(csvimport.MsgInvalidFile)
	}
	if err != nil {
		if tab.Err != "" {
			return errors.New(tab.Err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	res := tab.Result
	fmt.Fprintf(out, "Imported %d of %d %s (%d failed)\n", res.Imported, res.Total, kind, res.Failed)
	if res.Message != "" {
		fmt.Fprintln(out, res.Message)
	}
	for _, row := range res.ImportedRows {
		fmt.Fprintf(out, "  + %s\n", row)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(out, "  - %s\n", e)
	}
	return nil
}
