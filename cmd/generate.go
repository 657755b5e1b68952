package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/planforge/planforge/generator"
	"github.com/planforge/planforge/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate --file <path_to_document>",
	Short: "Generate tasks from a requirements document.",
	Long: `Parses a requirements document (plain text or Markdown) and generates a
validated, dependency-ordered task collection.

The default "heuristic" provider is deterministic and runs offline. The
"openai" provider sends the document to an LLM and validates its output
through the same pipeline; it requires an API key (OPENAI_API_KEY or
llm.apiKey in .planforge.yaml).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		docPath, _ := cmd.Flags().GetString("file")
		if docPath == "" {
			return fmt.Errorf("the --file flag is required")
		}

		cfg := *GetConfig()
		if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
			cfg.Generation.Provider = provider
		}
		if maxTasks, _ := cmd.Flags().GetInt("max-tasks"); maxTasks > 0 {
			cfg.Generation.MaxTasks = maxTasks
		}
		outPath, _ := cmd.Flags().GetString("output")
		if outPath == "" {
			outPath = cfg.Output.File
		}
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = cfg.Output.Format
		}
		if format != "json" && format != "yaml" {
			return fmt.Errorf("unsupported output format %q (json or yaml)", format)
		}

		prdContent, err := afero.ReadFile(fs, docPath)
		if err != nil {
			return fmt.Errorf("read document %q: %w", docPath, err)
		}

		gen, err := generator.New(&cfg)
		if err != nil {
			return fmt.Errorf("create generator: %w", err)
		}

		opts := generator.Options{MaxTasks: cfg.Generation.MaxTasks, ModelName: cfg.LLM.ModelName, Temperature: cfg.LLM.Temperature}
		if model, _ := cmd.Flags().GetString("model"); model != "" {
			opts.ModelName = model
		}
		if temp, _ := cmd.Flags().GetFloat64("temperature"); temp > 0 {
			opts.Temperature = temp
		}

		tj, err := gen.Generate(ctx, string(prdContent), opts)
		if err != nil {
			return fmt.Errorf("generate tasks: %w", err)
		}

		out, err := encodeTasks(tj, format)
		if err != nil {
			return err
		}

		if outPath == "" {
			cmd.Println(string(out))
		} else {
			if err := afero.WriteFile(fs, outPath, out, 0o644); err != nil {
				return fmt.Errorf("write output %q: %w", outPath, err)
			}
			cmd.Printf("Wrote %d tasks to %s\n", len(tj.Tasks), outPath)
		}

		if verbose {
			cmd.PrintErrf("generator=%s source=%s tasks=%d\n", tj.Version.Generator, tj.Version.SourcePRD, len(tj.Tasks))
		}
		return nil
	},
}

// encodeTasks serializes a collection as JSON or, via its JSON form so key
// names stay identical, as YAML.
func encodeTasks(tj *models.TasksJson, format string) ([]byte, error) {
	data, err := json.MarshalIndent(tj, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	if format == "json" {
		return data, nil
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode tasks as yaml: %w", err)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("file", "f", "", "Path to the requirements document to generate tasks from.")
	generateCmd.Flags().StringP("output", "o", "", "Write the collection to this path instead of stdout.")
	generateCmd.Flags().String("format", "", "Output format: json or yaml.")
	generateCmd.Flags().Int("max-tasks", 0, "Upper bound on generated tasks (default 20).")
	generateCmd.Flags().String("provider", "", "Generator provider: heuristic or openai.")
	generateCmd.Flags().String("model", "", "Model name for the openai provider.")
	generateCmd.Flags().Float64("temperature", 0, "Sampling temperature for the openai provider.")
}
