package models

import (
	"strings"
	"testing"
	"time"
)

func validTask() Task {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return Task{
		ID:    "T-001",
		Title: "Implement the document segmenter",
		Tags:  []string{"feature"},
		Steps: []string{"Review requirements", "Write the code"},
		Metadata: &TaskMetadata{
			Priority:    PriorityP2,
			Risk:        RiskLow,
			EffortHours: 4,
			Role:        RoleBackend,
			Status:      StatusPlanned,
			Created:     now,
			Updated:     now,
		},
	}
}

func TestValidateTask(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{name: "valid task", mutate: func(*Task) {}, wantErr: false},
		{name: "no metadata is valid", mutate: func(tk *Task) { tk.Metadata = nil }, wantErr: false},
		{name: "empty id", mutate: func(tk *Task) { tk.ID = "" }, wantErr: true},
		{name: "lowercase id", mutate: func(tk *Task) { tk.ID = "t-001" }, wantErr: true},
		{name: "unpadded id", mutate: func(tk *Task) { tk.ID = "T-1" }, wantErr: true},
		{name: "title too short", mutate: func(tk *Task) { tk.Title = "ab" }, wantErr: true},
		{name: "title too long", mutate: func(tk *Task) { tk.Title = strings.Repeat("x", 141) }, wantErr: true},
		{name: "no steps", mutate: func(tk *Task) { tk.Steps = nil }, wantErr: true},
		{name: "blank step", mutate: func(tk *Task) { tk.Steps = []string{"  "} }, wantErr: true},
		{name: "too many steps", mutate: func(tk *Task) { tk.Steps = make21("step") }, wantErr: true},
		{name: "too many tags", mutate: func(tk *Task) { tk.Tags = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} }, wantErr: true},
		{name: "effort below band", mutate: func(tk *Task) { tk.Metadata.EffortHours = 1 }, wantErr: true},
		{name: "effort above band", mutate: func(tk *Task) { tk.Metadata.EffortHours = 25 }, wantErr: true},
		{name: "bad priority", mutate: func(tk *Task) { tk.Metadata.Priority = "urgent" }, wantErr: true},
		{name: "bad role", mutate: func(tk *Task) { tk.Metadata.Role = "designer" }, wantErr: true},
		{name: "bad status", mutate: func(tk *Task) { tk.Metadata.Status = "done" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(&task)
			err := ValidateTask(&task)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTask() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func make21(prefix string) []string {
	out := make([]string, 21)
	for i := range out {
		out[i] = prefix
	}
	return out
}

func TestCheckTask_PathsAndMessages(t *testing.T) {
	task := validTask()
	task.ID = "bad"
	task.Steps = []string{""}

	issues := CheckTask(&task)
	if len(issues) < 2 {
		t.Fatalf("got %d issues, want at least 2: %v", len(issues), issues)
	}
	paths := make(map[string]bool)
	for _, iss := range issues {
		paths[iss.Path] = true
		if iss.Message == "" {
			t.Errorf("issue %q has empty message", iss.Path)
		}
	}
	if !paths["id"] {
		t.Errorf("missing issue for id, got paths %v", paths)
	}
	if !paths["steps[0]"] {
		t.Errorf("missing issue for steps[0], got paths %v", paths)
	}
}

func TestValidateTasks_CollectionBounds(t *testing.T) {
	tj := &TasksJson{Version: Version{Schema: "1.0"}, Tasks: []Task{validTask()}}
	if err := ValidateTasks(tj); err != nil {
		t.Fatalf("valid collection rejected: %v", err)
	}

	empty := &TasksJson{Version: Version{Schema: "1.0"}}
	if err := ValidateTasks(empty); err == nil {
		t.Error("empty collection must be rejected")
	}

	big := &TasksJson{Version: Version{Schema: "1.0"}}
	for i := 0; i < 201; i++ {
		big.Tasks = append(big.Tasks, validTask())
	}
	if err := ValidateTasks(big); err == nil {
		t.Error("collection above 200 tasks must be rejected")
	}
}
