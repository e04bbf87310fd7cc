package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/genealogy-backend/internal/app"
	"github.com/yungbote/genealogy-backend/internal/platform/logger"
	"github.com/yungbote/genealogy-backend/internal/seed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a family tree from YAML into the genealogy store",
		Long: `seed reads a YAML family description (people, marriages, parent edges)
and writes it through the same service the HTTP API uses.

Store connection settings come from the usual environment variables
(STORE_BACKEND, NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD, ...).`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("file", "f", "", "Path to the YAML family file")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	_ = rootCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(
		newLoadCmd(),
		newValidateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readFile(cmd *cobra.Command) (*seed.File, error) {
	path, _ := cmd.Flags().GetString("file")
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return seed.Parse(fh)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Parse and check a seed file without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readFile(cmd)
			if err != nil {
				return err
			}
			if err := seed.Validate(f); err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]int{
					"people":    len(f.People),
					"marriages": len(f.Marriages),
					"children":  len(f.Children),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d people, %d marriages, %d parent edges\n",
				len(f.People), len(f.Marriages), len(f.Children))
			return nil
		},
	}
}

func newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Write the seed file into the configured store",
		Long: `Create every person, then every marriage, then every parent edge.

Examples:
  seed load -f family.yaml            # write into Neo4j (NEO4J_URI)
  seed load -f family.yaml --memory   # dry run against an in-memory store`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readFile(cmd)
			if err != nil {
				return err
			}
			memory, _ := cmd.Flags().GetBool("memory")
			jsonOut, _ := cmd.Flags().GetBool("json")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log, err := logger.New(os.Getenv("LOG_MODE"))
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			cfg := app.LoadConfig(log)
			if memory {
				cfg.StoreBackendRaw = string(app.StoreBackendMemory)
			}
			application, err := app.NewWithConfig(ctx, log, cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			res, err := seed.Apply(ctx, application.Services.Genealogy, f)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
			}
			keys := make([]string, 0, len(res.IDs))
			for k := range res.IDs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", k, res.IDs[k])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d people, %d marriages, %d parent edges\n",
				len(res.IDs), res.Marriages, res.ParentEdges)
			return nil
		},
	}
	cmd.Flags().Bool("memory", false, "Use an in-memory store instead of Neo4j")
	return cmd
}
