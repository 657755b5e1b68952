package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/graph"
	"github.com/planforge/planforge/internal/schema"
	"github.com/planforge/planforge/models"
)

// validateCmd checks an existing task collection file: JSON Schema shape,
// field-level contracts, unique ids, dangling/self references, and cycles.
var validateCmd = &cobra.Command{
	Use:   "validate --file <tasks.json>",
	Short: "Validate a task collection file",
	Long: `Checks a task collection for schema shape, field-level contract
violations, duplicate ids, dangling or self dependency references, and
dependency cycles. All issues are reported; the command exits non-zero if
any were found. Dangling and self references are reported as repairable:
they are exactly what the engine's sanitization pass removes.`,
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

		var issues []string

		// Shape first: a file that fails the JSON Schema may not decode
		// cleanly, so stop there.
		if schemaIssues := schema.Validate(data); len(schemaIssues) > 0 {
			for _, iss := range schemaIssues {
				issues = append(issues, "schema: "+iss.String())
			}
			return reportIssues(cmd, issues)
		}

		var tj models.TasksJson
		if err := json.Unmarshal(data, &tj); err != nil {
			return fmt.Errorf("decode %q: %w", path, err)
		}

		// Structural and uniqueness checks run before cycle detection; the
		// cycle check's guarantees assume a well-formed graph.
		for _, iss := range models.CheckTasks(&tj) {
			issues = append(issues, "structural: "+iss.String())
		}
		if res := graph.ValidateUniqueIDs(tj.Tasks); !res.Valid {
			issues = append(issues, fmt.Sprintf("duplicate ids: %s", strings.Join(res.Duplicates, ", ")))
		}

		sanitized := graph.SanitizeDependencies(tj.Tasks)
		for i := range tj.Tasks {
			for _, dep := range tj.Tasks[i].Deps {
				if !containsDep(sanitized[i].Deps, dep) {
					kind := "dangling"
					if dep == tj.Tasks[i].ID {
						kind = "self"
					}
					issues = append(issues, fmt.Sprintf("%s dependency (repairable): task %s -> %s", kind, tj.Tasks[i].ID, dep))
				}
			}
		}

		if res := graph.DetectCycles(sanitized); res.HasCycle {
			issues = append(issues, fmt.Sprintf("cycle: %s", strings.Join(res.Path, " -> ")))
		}

		if len(issues) == 0 {
			cmd.Printf("%s: %d tasks, no issues found.\n", path, len(tj.Tasks))
			return nil
		}
		return reportIssues(cmd, issues)
	},
}

func reportIssues(cmd *cobra.Command, issues []string) error {
	for _, iss := range issues {
		cmd.PrintErrln(iss)
	}
	return fmt.Errorf("%d issue(s) found", len(issues))
}

func containsDep(deps []string, want string) bool {
	for _, d := range deps {
		if d == want {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("file", "f", "", "Path to the task collection file to validate.")
}
