package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// FileExtension is appended to project files saved from the CLI.
const FileExtension = ".loadplan"

// formatVersion is written into every project file.
const formatVersion = "1.0.0"

// projectFile is the on-disk envelope around a Project.
type projectFile struct {
	Version string        `json:"version"`
	SavedAt string        `json:"saved_at"`
	Project model.Project `json:"project"`
}

// SaveProject writes p to path as indented JSON, creating parent
// directories as needed.
func SaveProject(path string, p model.Project) error {
	file := projectFile{
		Version: formatVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Project: p,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project written by SaveProject.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var file projectFile
	if err := json.Unmarshal(data, &file); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if file.Version == "" {
		return model.Project{}, fmt.Errorf("invalid project file: missing version field")
	}

	p := file.Project
	if p.Items == nil {
		p.Items = []model.CargoItem{}
	}
	if len(p.Containers) == 0 {
		p.Containers = model.DefaultAppConfig().DefaultContainers
	}
	return p, nil
}
