package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
	"shopbot/internal/repos"
	"shopbot/internal/services"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the catalog schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		applog.Info(cmd.Context(), "db.migrated", map[string]any{"driver": cfg.DBDriver})
		fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect or bulk-load the product catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every product with its brand, category and links",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeDB()

		entries, err := svc.Entries(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BRAND\tCATEGORY\tPRODUCT\tMESSAGE\tFILE\tLINKS")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", e.Brand, e.Category, e.Name, e.ChannelMessageRef, fileColumn(e.Product), linksColumn(e.Product))
		}
		return w.Flush()
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Upsert products from a YAML catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeDB()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := svc.ImportCatalog(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("import stopped after %d products: %w", n, err)
		}
		applog.Audit(cmd.Context(), "catalog.import", map[string]any{"file": args[0], "products": n})
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d products\n", n)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd, catalogImportCmd)
}

func openCatalog() (*services.CatalogService, func() error, error) {
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	svc := services.NewCatalogService(repos.NewBrandRepo(db), repos.NewCategoryRepo(db), repos.NewProductRepo(db))
	return svc, db.Close, nil
}

func fileColumn(p domain.Product) string {
	if !p.HasStoredFile() {
		return "-"
	}
	return p.StoredFileType
}

func linksColumn(p domain.Product) string {
	var parts []string
	for _, l := range p.PurchaseLinks() {
		parts = append(parts, string(l.Market))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
