package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
)

const (
	CfgFileName = "config.yaml"
	PathLocal   = "."
	PathGlobal  = "/etc/folders"
)

// ErrNoConfigFile is returned when none of the search directories holds a
// configuration file.
var ErrNoConfigFile = errors.New("could not find any configuration file")

type Configuration struct {
	global  *GlobalConfiguration
	http    *HttpConfiguration
	sources []*Source
	jobs    Raw
}

func (c *Configuration) Global() *GlobalConfiguration {
	return c.global
}

func (c *Configuration) Http() *HttpConfiguration {
	return c.http
}

func (c *Configuration) Sources() []*Source {
	return c.sources
}

// Source returns the source with the given name, or nil.
func (c *Configuration) Source(name string) *Source {
	for _, source := range c.sources {
		if source.Name == name {
			return source
		}
	}
	return nil
}

// Jobs returns the raw `jobs:` section; the jobs package parses it.
func (c *Configuration) Jobs() Raw {
	return c.jobs
}

// SearchDirectories lists the directories Load looks into, in order.
func SearchDirectories() []string {
	directories := []string{PathLocal}

	userHome, err := os.UserHomeDir()
	if err == nil {
		directories = append(directories, filepath.Join(userHome, ".folders"))
	}

	return append(directories, PathGlobal)
}

// Load reads the configuration from path or, if path is empty, from the first
// config.yaml found in SearchDirectories.
func Load(path string) (*Configuration, error) {
	var file *os.File
	var err error

	if path != "" {
		file, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open configuration file: %w", err)
		}
	} else {
		for _, directory := range SearchDirectories() {
			possibleConfigPath := filepath.Join(directory, CfgFileName)
			log.Debugf("Checking for configuration file at %s", possibleConfigPath)

			file, err = os.Open(possibleConfigPath)

			if err == nil {
				log.Infof("Found configuration file at location %s", possibleConfigPath)
				break
			}
		}

		if file == nil {
			return nil, ErrNoConfigFile
		}
	}

	defer file.Close()

	return Read(file)
}

// Read parses a configuration document.
func Read(reader io.Reader) (*Configuration, error) {
	raw, err := Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	return NewConfigurationInstance(raw)
}

func NewConfigurationInstance(cfg Raw) (*Configuration, error) {
	httpConfig, err := parseHttp(cfg.Sub("http"))
	if err != nil {
		return nil, fmt.Errorf("invalid http section: %w", err)
	}

	sources, err := parseSources(cfg.Sub("sources"))
	if err != nil {
		return nil, err
	}

	return &Configuration{
		global:  parseGlobal(cfg),
		http:    httpConfig,
		sources: sources,
		jobs:    cfg.Sub("jobs"),
	}, nil
}

func sortedKeys(cfg Raw) []string {
	keys := cfg.Keys()
	sort.Strings(keys)
	return keys
}
