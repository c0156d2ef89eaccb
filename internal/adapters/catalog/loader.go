package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/cardquest-go/internal/application/simulation"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/infrastructure/config"
)

// LoadDefinitions reads content definitions from a YAML file, or from every
// *.yaml / *.yml file of a directory merged in name order
func LoadDefinitions(path string) (content.Definitions, error) {
	files, err := contentFiles(path)
	if err != nil {
		return content.Definitions{}, err
	}

	var merged content.Definitions
	for _, file := range files {
		var defs content.Definitions
		if err := decodeFile(file, &defs); err != nil {
			return content.Definitions{}, err
		}
		merged.Items = append(merged.Items, defs.Items...)
		merged.Enemies = append(merged.Enemies, defs.Enemies...)
		merged.Biomes = append(merged.Biomes, defs.Biomes...)
		merged.Regions = append(merged.Regions, defs.Regions...)
		merged.Projects = append(merged.Projects, defs.Projects...)
		merged.Tasks = append(merged.Tasks, defs.Tasks...)
		merged.Classes = append(merged.Classes, defs.Classes...)
		merged.Traits = append(merged.Traits, defs.Traits...)
	}

	if err := config.NewValidator().Validate(&merged); err != nil {
		return content.Definitions{}, fmt.Errorf("invalid content in %s: %w", path, err)
	}
	return merged, nil
}

// LoadCatalog loads definitions and builds a cross-checked registry
func LoadCatalog(path string) (*content.Registry, error) {
	defs, err := LoadDefinitions(path)
	if err != nil {
		return nil, err
	}
	registry, err := content.NewRegistry(defs)
	if err != nil {
		return nil, fmt.Errorf("invalid content in %s: %w", path, err)
	}
	return registry, nil
}

// LoadScenario reads and validates a scenario file
func LoadScenario(path string) (simulation.Scenario, error) {
	var sc simulation.Scenario
	if err := decodeFile(path, &sc); err != nil {
		return simulation.Scenario{}, err
	}
	if err := config.NewValidator().Validate(&sc); err != nil {
		return simulation.Scenario{}, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return sc, nil
}

func contentFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open content: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list content directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no content files in %s", path)
	}
	sort.Strings(files)
	return files, nil
}

// decodeFile rejects unknown keys so typos in content surface at load time
func decodeFile(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
