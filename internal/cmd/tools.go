package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willfong/mockbank/internal/tools"
)

var (
	toolsJSON bool
	toolArgs  string
	toolSave  bool
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available tools",
	Long: `List every tool with its kind (read or write) and description.
With --json the full definitions, including input schemas, are printed.`,
	RunE: runTools,
}

var toolCmd = &cobra.Command{
	Use:   "tool <name>",
	Short: "Call a single tool",
	Long: `Call one tool with JSON arguments and print the JSON result.

Business failures (unknown account, insufficient funds, ...) are results,
not command errors: they print as {"error": "..."}.

State changes are lost when the command exits unless --save is given, in
which case the ledger is written back to the --db snapshot file.

Example:
  mockbank tool get_customer_accounts --args '{"customer_id":"customer_1001"}'
  mockbank tool process_transfer --db bank.json --save \
    --args '{"from_account_id":"account_2002","to_account_id":"account_2003","amount":100}'`,
	Args: cobra.ExactArgs(1),
	RunE: runTool,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(toolCmd)

	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "print full definitions as JSON")

	toolCmd.Flags().StringVar(&toolArgs, "args", "{}", "tool arguments as a JSON object")
	toolCmd.Flags().BoolVar(&toolSave, "save", false, "write the ledger back to --db after a successful write")
}

func runTools(cmd *cobra.Command, args []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	defs := reg.Definitions()

	if toolsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	}

	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []string{d.Name, string(d.Kind), d.Description})
	}
	u := newUI(cmd)
	u.Println(u.Table([]string{"NAME", "KIND", "DESCRIPTION"}, rows))
	return nil
}

func runTool(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg, err := openRegistry()
	if err != nil {
		return err
	}
	tool, ok := reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q (see 'mockbank tools')", tools.ErrUnknownTool, name)
	}

	result, err := reg.Call(name, json.RawMessage(toolArgs))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if tool.Kind != tools.KindWrite || tools.IsError(result) || !appCfg.Ledger.SaveOnExit {
		return nil
	}
	if err := saveEngine(reg.Engine()); err != nil {
		return err
	}
	logger.Debug("tool result saved", zap.String("tool", name))
	return nil
}
