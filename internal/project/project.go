package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/panelcut/internal/model"
)

// Save writes a project (stock, parts and settings) as JSON.
func Save(path string, proj model.Project) error {
	return writeJSON(path, proj)
}

// Load reads a project file. Settings missing from the file keep their
// defaults.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	proj := model.NewProject()
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	return proj, nil
}
