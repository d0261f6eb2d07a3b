package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tmoreno/studyplanner/internal/model"
	"github.com/tmoreno/studyplanner/internal/validate"
)

//go:embed envelope.schema.json
var envelopeSchemaJSON string

// envelopeSchema validates the top level of an import payload. The
// per-task contents are deliberately left loose here; individual tasks
// are validated (and dropped) one at a time.
var envelopeSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("envelope.schema.json", strings.NewReader(envelopeSchemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("envelope.schema.json")
}()

// ImportResult reports the outcome of an import: the accepted tasks,
// optional settings, and how many malformed entries were skipped.
type ImportResult struct {
	Tasks    []model.Task
	Settings *model.Settings
	Dropped  int
}

// Export renders tasks and settings as a versioned JSON envelope.
func Export(tasks []model.Task, settings model.Settings) ([]byte, error) {
	env := model.NewEnvelope(tasks, settings)
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling export envelope: %w", err)
	}
	return data, nil
}

// Import parses a backup envelope. Only a structurally invalid top
// level (bad JSON, wrong envelope shape, unsupported version) rejects
// the whole payload; malformed individual tasks are dropped and
// counted, never failing the batch.
func Import(data []byte, logger *log.Logger) (ImportResult, error) {
	if logger == nil {
		logger = log.Default()
	}

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return ImportResult{}, fmt.Errorf("import file is not valid JSON: %w", err)
	}
	if err := envelopeSchema.Validate(top); err != nil {
		return ImportResult{}, fmt.Errorf("import file is not a valid backup envelope: %w", err)
	}

	var env struct {
		Version  string            `json:"version"`
		Tasks    []json.RawMessage `json:"tasks"`
		Settings *model.Settings   `json:"settings"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return ImportResult{}, fmt.Errorf("decoding backup envelope: %w", err)
	}

	result := ImportResult{Settings: env.Settings}
	seen := make(map[string]bool)

	for _, raw := range env.Tasks {
		task, ok := decodeTask(raw)
		if !ok || seen[task.ID] {
			result.Dropped++
			continue
		}
		seen[task.ID] = true
		result.Tasks = append(result.Tasks, task)
	}

	if result.Dropped > 0 {
		logger.Warn("skipped malformed tasks during import",
			"accepted", len(result.Tasks), "skipped", result.Dropped)
	}
	return result, nil
}

// decodeTask validates a single imported task independently of the
// rest of the batch.
func decodeTask(raw json.RawMessage) (model.Task, bool) {
	var task model.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return model.Task{}, false
	}
	if task.ID == "" {
		return model.Task{}, false
	}
	if !validate.Title(task.Title).Valid {
		return model.Task{}, false
	}
	if !validate.Date(task.DueDate).Valid {
		return model.Task{}, false
	}
	if task.DurationHours < 0 {
		return model.Task{}, false
	}
	if task.Tag != "" && !validate.Tag(task.Tag).Valid {
		return model.Task{}, false
	}
	return task, true
}
