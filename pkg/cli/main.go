// Package cli assembles the dataapi command-line tool: one subcommand
// per Data API operation, plus config and version commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nimburion/dataapi/pkg/config"
	"github.com/nimburion/dataapi/pkg/dataapi"
	"github.com/nimburion/dataapi/pkg/observability/logger"
	"github.com/nimburion/dataapi/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Document is the dynamic document shape the CLI works with.
type Document = map[string]any

// NewRootCommand builds the dataapi root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dataapi",
		Short:         "Typed client for a document database HTTP Data API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var cfgPath string
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config-file", "c", "", "config file path")

	loadClient := func() (*dataapi.Client[Document], logger.Logger, error) {
		cfg, log, err := loadConfigAndLogger(cfgPath)
		if err != nil {
			return nil, nil, err
		}
		client := dataapi.New[Document](dataapi.Config{
			BaseURL:          cfg.DataAPI.BaseURL,
			APIKey:           cfg.DataAPI.APIKey,
			DataSource:       cfg.DataAPI.DataSource,
			Database:         cfg.DataAPI.Database,
			Collection:       cfg.DataAPI.Collection,
			OperationTimeout: cfg.DataAPI.OperationTimeout,
		}, log)
		return client, log, nil
	}

	rootCmd.AddCommand(newFindOneCommand(loadClient))
	rootCmd.AddCommand(newFindCommand(loadClient))
	rootCmd.AddCommand(newInsertOneCommand(loadClient))
	rootCmd.AddCommand(newInsertManyCommand(loadClient))
	rootCmd.AddCommand(newUpdateOneCommand(loadClient))
	rootCmd.AddCommand(newDeleteOneCommand(loadClient))
	rootCmd.AddCommand(newAggregateCommand(loadClient))
	rootCmd.AddCommand(newConfigCommand(&cfgPath))

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Current("dataapi")
			fmt.Printf("Service:    %s\n", info.Service)
			fmt.Printf("Version:    %s\n", info.Version)
			fmt.Printf("Commit:     %s\n", info.Commit)
			fmt.Printf("Build Time: %s\n", info.BuildTime)
		},
	})

	return rootCmd
}

type clientFactory func() (*dataapi.Client[Document], logger.Logger, error)

func newFindOneCommand(loadClient clientFactory) *cobra.Command {
	var filterJSON, projectionJSON string
	cmd := &cobra.Command{
		Use:   "find-one",
		Short: "Return the first document matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient()
			if err != nil {
				return err
			}
			filter, err := parseFilter(filterJSON)
			if err != nil {
				return err
			}
			var projection dataapi.Projection
			if err := decodeJSONFlag("projection", projectionJSON, &projection); err != nil {
				return err
			}
			doc, err := client.FindOne(cmd.Context(), filter, projection)
			if err != nil {
				return err
			}
			return printJSON(doc)
		},
	}
	registerFilterFlag(cmd.Flags(), &filterJSON)
	cmd.Flags().StringVar(&projectionJSON, "projection", "", "projection as JSON")
	return cmd
}

func newFindCommand(loadClient clientFactory) *cobra.Command {
	var filterJSON, projectionJSON, sortJSON string
	var limit, skip int64
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Return all documents matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient()
			if err != nil {
				return err
			}
			filter, err := parseFilter(filterJSON)
			if err != nil {
				return err
			}
			opts := dataapi.FindOptions{Limit: limit, Skip: skip}
			if err := decodeJSONFlag("projection", projectionJSON, &opts.Projection); err != nil {
				return err
			}
			if err := decodeJSONFlag("sort", sortJSON, &opts.Sort); err != nil {
				return err
			}
			docs, err := client.Find(cmd.Context(), filter, opts)
			if err != nil {
				return err
			}
			return printJSON(docs)
		},
	}
	registerFilterFlag(cmd.Flags(), &filterJSON)
	cmd.Flags().StringVar(&projectionJSON, "projection", "", "projection as JSON")
	cmd.Flags().StringVar(&sortJSON, "sort", "", "sort specification as JSON")
	cmd.Flags().Int64Var(&limit, "limit", 0, "maximum number of documents to return")
	cmd.Flags().Int64Var(&skip, "skip", 0, "number of matching documents to skip")
	return cmd
}

func newInsertOneCommand(loadClient clientFactory) *cobra.Command {
	var documentJSON string
	cmd := &cobra.Command{
		Use:   "insert-one",
		Short: "Insert a single document",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient()
			if err != nil {
				return err
			}
			var document Document
			if err := decodeJSONFlag("document", documentJSON, &document); err != nil {
				return err
			}
			if document == nil {
				return fmt.Errorf("--document is required")
			}
			id, err := client.InsertOne(cmd.Context(), document)
			if err != nil {
				return err
			}
			return printJSON(map[string]string{"insertedId": id})
		},
	}
	cmd.Flags().StringVar(&documentJSON, "document", "", "document as JSON")
	return cmd
}

func newInsertManyCommand(loadClient clientFactory) *cobra.Command {
	var documentsJSON string
	cmd := &cobra.Command{
		Use:   "insert-many",
		Short: "Insert multiple documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient()
			if err != nil {
				return err
			}
			var documents []Document
			if err := decodeJSONFlag("documents", documentsJSON, &documents); err != nil {
				return err
			}
			if len(documents) == 0 {
				return fmt.Errorf("--documents must be a non-empty JSON array")
			}
			ids, err := client.InsertMany(cmd.Context(), documents)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{"insertedIds": ids})
		},
	}
	cmd.Flags().StringVar(&documentsJSON, "documents", "", "documents as a JSON array")
	return cmd
}

func newUpdateOneCommand(loadClient clientFactory) *cobra.Command {
	var filterJSON, updateJSON string
	var upsert bool
	cmd := &cobra.Command{
		Use:   "update-one",
		Short: "Update the first document matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient()
			if err != nil {
				return err
			}
			filter, err := parseFilter(filterJSON)
			if err != nil {
				return err
			}
			var update dataapi.Update
			if err := decodeJSONFlag("update", updateJSON, &update); err != nil {
				return err
			}
			if update == nil {
				return fmt.Errorf("--update is required")
			}
			result, err := client.UpdateOne(cmd.Context(), filter, update, dataapi.UpdateOptions{Upsert: upsert})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	registerFilterFlag(cmd.Flags(), &filterJSON)
	cmd.Flags().StringVar(&updateJSON, "update", "", "update specification as JSON")
	cmd.Flags().BoolVar(&upsert, "upsert", false, "insert a new document when nothing matches")
	return cmd
}

func newDeleteOneCommand(loadClient clientFactory) *cobra.Command {
	var filterJSON string
	cmd := &cobra.Command{
		Use:   "delete-one",
		Short: "Delete the first document matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient()
			if err != nil {
				return err
			}
			filter, err := parseFilter(filterJSON)
			if err != nil {
				return err
			}
			count, err := client.DeleteOne(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(map[string]int64{"deletedCount": count})
		},
	}
	registerFilterFlag(cmd.Flags(), &filterJSON)
	return cmd
}

func newAggregateCommand(loadClient clientFactory) *cobra.Command {
	var pipelineJSON string
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Run an aggregation pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient()
			if err != nil {
				return err
			}
			var pipeline dataapi.Pipeline
			if err := decodeJSONFlag("pipeline", pipelineJSON, &pipeline); err != nil {
				return err
			}
			if len(pipeline) == 0 {
				return fmt.Errorf("--pipeline must be a non-empty JSON array of stages")
			}
			docs, err := client.Aggregate(cmd.Context(), pipeline)
			if err != nil {
				return err
			}
			return printJSON(docs)
		},
	}
	cmd.Flags().StringVar(&pipelineJSON, "pipeline", "", "aggregation pipeline as a JSON array")
	return cmd
}

func newConfigCommand(cfgPath *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewViperLoader(*cfgPath, "DATAAPI").Load(); err != nil {
				return err
			}
			fmt.Println("configuration is valid")
			return nil
		},
	})

	var showSecrets bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewViperLoader(*cfgPath, "DATAAPI").Load()
			if err != nil {
				return err
			}
			if !showSecrets {
				cfg.DataAPI.APIKey = "***"
			}
			formatted, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			fmt.Print(string(formatted))
			return nil
		},
	}
	showCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "show secret values")
	configCmd.AddCommand(showCmd)

	return configCmd
}

func loadConfigAndLogger(cfgPath string) (*config.Config, logger.Logger, error) {
	cfg, err := config.NewViperLoader(cfgPath, "DATAAPI").Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level, err := logger.ParseLogLevel(cfg.Observability.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	format, err := logger.ParseLogFormat(cfg.Observability.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.NewZapLogger(logger.Config{Level: level, Format: format})
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log, nil
}

// registerFilterFlag declares the --filter flag shared by the query
// commands. The default matches every document.
func registerFilterFlag(flags *pflag.FlagSet, target *string) {
	flags.StringVar(target, "filter", "{}", "filter as JSON")
}

func parseFilter(raw string) (dataapi.Filter, error) {
	var filter dataapi.Filter
	if err := decodeJSONFlag("filter", raw, &filter); err != nil {
		return nil, err
	}
	return filter, nil
}

func decodeJSONFlag(name, raw string, out any) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(trimmed), out); err != nil {
		return fmt.Errorf("invalid --%s JSON: %w", name, err)
	}
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Execute runs the command and exits with appropriate code.
func Execute(cmd *cobra.Command) {
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
