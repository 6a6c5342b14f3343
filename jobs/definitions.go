package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/gorhill/cronexpr"
	log "github.com/sirupsen/logrus"

	"github.com/owservable/folders"
	"github.com/owservable/folders/config"
)

// DefaultsKey names the entry of the jobs section that is not a job itself but
// holds values every job inherits.
const DefaultsKey = "defaults"

// Definition is one configured scan job.
type Definition struct {
	Name       string
	Source     string
	Root       string
	FolderName string
	Operation  folders.Operation
	Schedule   *cronexpr.Expression
	// Expression is the schedule as written in the configuration.
	Expression string
}

func (d *Definition) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Name)
}

type defaults struct {
	source     string
	operation  string
	expression string
}

// ParseDefinitions reads the jobs section. sources lists the names a job may
// refer to. Jobs are returned sorted by name.
func ParseDefinitions(cfg config.Raw, sources []string) ([]*Definition, error) {
	known := make(map[string]struct{}, len(sources))
	for _, source := range sources {
		known[source] = struct{}{}
	}

	inherited := parseDefaults(cfg.Sub(DefaultsKey))

	names := cfg.Keys()
	sort.Strings(names)

	definitions := make([]*Definition, 0, len(names))
	for _, name := range names {
		if name == DefaultsKey {
			continue
		}

		definition, err := parseDefinition(cfg.Sub(name), name, inherited)
		if err != nil {
			return nil, fmt.Errorf("job '%s' could not be parsed: %w", name, err)
		}

		if _, exists := known[definition.Source]; !exists {
			return nil, fmt.Errorf("job '%s' refers to unknown source '%s'", name, definition.Source)
		}

		definitions = append(definitions, definition)
	}

	return definitions, nil
}

func parseDefaults(cfg config.Raw) *defaults {
	if cfg == nil {
		return &defaults{}
	}

	return &defaults{
		source:     cfg.String("source"),
		operation:  cfg.String("operation"),
		expression: cfg.String("schedule"),
	}
}

func parseDefinition(cfg config.Raw, name string, inherited *defaults) (*Definition, error) {
	if !config.LegalAlias(name) {
		return nil, fmt.Errorf("name %#q contains characters which are not allowed in URLs", name)
	}

	if cfg == nil {
		return nil, errors.New("missing job configuration entries")
	}

	definition := &Definition{
		Name:       name,
		Source:     inherited.source,
		Root:       cfg.String("root"),
		FolderName: cfg.String("name"),
		Expression: inherited.expression,
	}

	if cfg.Has("source") {
		definition.Source = cfg.String("source")
	}

	if definition.Source == "" {
		return nil, errors.New("parameter 'source' is missing")
	}

	operation := inherited.operation
	if cfg.Has("operation") {
		operation = cfg.String("operation")
	}

	if operation == "" {
		operation = string(folders.OperationFiles)
		log.Debugf("[job:%s] No operation given, defaulting to '%s'", name, operation)
	}

	op, err := folders.ParseOperation(operation)
	if err != nil {
		return nil, err
	}
	definition.Operation = op

	if op.NeedsName() && definition.FolderName == "" {
		return nil, fmt.Errorf("operation '%s' requires the parameter 'name'", op)
	}

	if cfg.Has("schedule") {
		definition.Expression = cfg.String("schedule")
	}

	if definition.Expression == "" {
		return nil, errors.New("parameter 'schedule' is missing")
	}

	schedule, err := cronexpr.Parse(definition.Expression)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %#q: %w", definition.Expression, err)
	}
	definition.Schedule = schedule

	return definition, nil
}
