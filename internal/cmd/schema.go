package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/willfong/mockbank/internal/config"
	"github.com/willfong/mockbank/internal/database"
)

var schemaOutputFile string

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema [type]",
	Short: "Output the SQL schema used by export",
	Long: `Output the SQL statements export runs before writing a snapshot.

Available schema types:
  full      Tables and indexes (default)
  tables    Tables only
  indexes   Indexes only

Each collection is one table keyed by id, with the document in a body
column (JSON on mysql, TEXT on sqlite) and an index on the owner column.

Examples:
  mockbank schema
  mockbank schema --driver mysql | mysql -u root bank
  mockbank schema indexes -o indexes.sql`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "output file (default: stdout)")
	schemaCmd.Flags().String("driver", config.DefaultDriver, "SQL dialect: sqlite or mysql")
}

func runSchema(cmd *cobra.Command, args []string) error {
	schemaType := "full"
	if len(args) > 0 {
		schemaType = args[0]
	}

	tableStmts, indexStmts := database.Schema(appCfg.Database.Driver)
	var stmts []string
	switch schemaType {
	case "full":
		stmts = append(tableStmts, indexStmts...)
	case "tables":
		stmts = tableStmts
	case "indexes":
		stmts = indexStmts
	default:
		return fmt.Errorf("unknown schema type %q (valid: full, tables, indexes)", schemaType)
	}
	content := strings.Join(stmts, ";\n\n") + ";\n"

	if schemaOutputFile == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	dir := filepath.Dir(schemaOutputFile)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(schemaOutputFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	u := newUI(cmd)
	fmt.Fprintln(cmd.ErrOrStderr(), u.Success("Schema written to: "+schemaOutputFile))
	return nil
}
