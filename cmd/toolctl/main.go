// toolctl invoca las herramientas del servidor desde la terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-chatbot/internal/interfaces/client"
	"github.com/jhoicas/inventario-chatbot/pkg/config"
)

var (
	serverURL  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "toolctl",
	Short: "Cliente de línea de comandos para la API de herramientas de inventario",
	Long: `Lista e invoca las herramientas que expone el servidor (query_stock, update_stock,
suggest_similar, create_product, lookup_documents) y consulta el almacén.

La URL del servidor se toma de --server o de TOOLS_BASE_URL.`,
	SilenceUsage: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista las herramientas registradas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		defs, err := newClient().ListTools(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, defs)
		}
		for _, d := range defs {
			fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", d.Name, d.Description)
		}
		return nil
	},
}

var callArgs string

var callCmd = &cobra.Command{
	Use:   "call <herramienta>",
	Short: "Invoca una herramienta con argumentos JSON",
	Example: `  toolctl call query_stock --args '{"name":"Martillo Bicolor 500g"}'
  toolctl call update_stock --args '{"name":"Tornillo M4 x 10mm","delta":-20}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.TrimSpace(callArgs)
		if raw != "" && !json.Valid([]byte(raw)) {
			return fmt.Errorf("--args no es JSON válido")
		}
		result, err := newClient().Call(cmd.Context(), args[0], json.RawMessage(raw))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, map[string]string{"tool": args[0], "result": result})
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

var stockCmd = &cobra.Command{
	Use:   "stock <nombre>",
	Short: "Muestra stock, ubicación y costo de un producto",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newClient().Stock(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, p)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tstock=%d\tubicación=%s\tcosto=%s\n",
			p.Name, p.StockQuantity, p.Location, p.UnitCost.StringFixed(2))
		return nil
	},
}

var movementsLimit int

var movementsCmd = &cobra.Command{
	Use:   "movements <nombre>",
	Short: "Historial de movimientos de un producto",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := newClient().Movements(cmd.Context(), args[0], movementsLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, out)
		}
		for _, m := range out.Items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%-7s\t%d\n", m.CreatedAt.Format("2006-01-02 15:04:05"), m.Type, m.Quantity)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL base del servidor (por defecto TOOLS_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "salida en JSON")
	callCmd.Flags().StringVar(&callArgs, "args", "{}", "argumentos JSON de la herramienta")
	movementsCmd.Flags().IntVar(&movementsLimit, "limit", 20, "máximo de movimientos")

	rootCmd.AddCommand(listCmd, callCmd, stockCmd, movementsCmd)
}

func newClient() *client.ToolClient {
	base := serverURL
	if base == "" {
		if cfg, err := config.Load(); err == nil {
			base = cfg.Client.BaseURL
		}
	}
	if base == "" {
		base = "http://localhost:8080"
	}
	return client.New(base)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
