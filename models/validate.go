package models

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// taskIDPattern is the required shape of a task identifier.
var taskIDPattern = regexp.MustCompile(`^[A-Z]-\d{3}$`)

// validate is a singleton validator instance; it caches struct metadata.
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report field names as their JSON names so issue paths match the wire
	// format callers actually see.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("task_id", func(fl validator.FieldLevel) bool {
		return taskIDPattern.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("nonempty", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Issue describes a single structural violation found in a value.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// CheckTask validates a single task against its field-level contracts and
// returns all violations. A nil result means the task is structurally valid.
func CheckTask(t *Task) []Issue {
	return checkStruct(t)
}

// CheckTasks validates a full collection, including the collection bounds
// themselves, and returns all violations.
func CheckTasks(tj *TasksJson) []Issue {
	return checkStruct(tj)
}

// ValidateTask is the halting form of CheckTask: it returns an error
// describing every violation, or nil.
func ValidateTask(t *Task) error {
	return issuesToError(CheckTask(t))
}

// ValidateTasks is the halting form of CheckTasks.
func ValidateTasks(tj *TasksJson) error {
	return issuesToError(CheckTasks(tj))
}

func issuesToError(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	parts := make([]string, len(issues))
	for i, iss := range issues {
		parts[i] = iss.String()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(parts, "; "))
}

func checkStruct(s any) []Issue {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError, e.g. a nil pointer was passed in.
		return []Issue{{Path: "", Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Path:    fieldPath(fe),
			Message: formatFieldError(fe),
		})
	}
	return issues
}

// fieldPath converts "TasksJson.tasks[2].title" into "tasks[2].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// formatFieldError creates a human-readable message for one violation.
func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "task_id":
		return fmt.Sprintf("%s must match [A-Z]-NNN (got %q)", fe.Field(), fe.Value())
	case "nonempty":
		return fmt.Sprintf("%s must not be empty or whitespace", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s entries", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s entries", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed rule %q", fe.Field(), fe.Tag())
	}
}
