package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/graph"
	"github.com/planforge/planforge/models"
)

// orderCmd prints a task collection in dependency order.
var orderCmd = &cobra.Command{
	Use:   "order --file <tasks.json>",
	Short: "Print tasks in dependency order",
	Long: `Sanitizes the dependency graph of a task collection and prints its tasks
in topological order (dependencies first). Fails if the graph contains a
cycle.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			return fmt.Errorf("the --file flag is required")
		}

		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return fmt.Errorf("read %q: %w", path, err)
		}
		var tj models.TasksJson
		if err := json.Unmarshal(data, &tj); err != nil {
			return fmt.Errorf("decode %q: %w", path, err)
		}

		sorted, err := graph.TopologicalOrder(graph.SanitizeDependencies(tj.Tasks))
		if err != nil {
			return err
		}
		for i, t := range sorted {
			line := fmt.Sprintf("%2d. %s  %s", i+1, t.ID, t.Title)
			if len(t.Deps) > 0 {
				line += fmt.Sprintf("  (after %s)", strings.Join(t.Deps, ", "))
			}
			cmd.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.Flags().StringP("file", "f", "", "Path to the task collection file to order.")
}
