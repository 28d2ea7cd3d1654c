package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// State is the pipeline state shared by the mutation steps
type State struct {
	// ProjectDirectory is the user's project; never written to
	ProjectDirectory string `json:"project_directory" yaml:"project_directory"`

	// MutatedProjectDirectory is the staged copy every later step works in
	MutatedProjectDirectory string `json:"mutated_project_directory,omitempty" yaml:"mutated_project_directory,omitempty"`

	LastUpdated time.Time `json:"last_updated" yaml:"last_updated"`
}

// New creates a state for the given project directory
func New(projectDirectory string) *State {
	return &State{
		ProjectDirectory: projectDirectory,
		LastUpdated:      time.Now(),
	}
}

// Change is a single update a step asks the pipeline to record
type Change interface {
	apply(s *State)
	fmt.Stringer
}

// MutatedDirectoryCreated records the resolved staging destination
type MutatedDirectoryCreated struct {
	Path string
}

func (c MutatedDirectoryCreated) apply(s *State) {
	s.MutatedProjectDirectory = c.Path
}

func (c MutatedDirectoryCreated) String() string {
	return "mutated directory created: " + c.Path
}

// Apply records changes in order
func (s *State) Apply(ctx context.Context, changes ...Change) {
	logger := zerolog.Ctx(ctx)
	for _, c := range changes {
		c.apply(s)
		logger.Debug().Stringer("change", c).Msg("applied state change")
	}
	if len(changes) > 0 {
		s.LastUpdated = time.Now()
	}
}

// LoadState reads a state file written by WriteState
func LoadState(ctx context.Context, path string) (*State, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading state")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading state file: %w", err)
	}

	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Errorf("parsing state file: %w", err)
	}
	if s.ProjectDirectory == "" {
		return nil, errors.Errorf("state file %s has no project_directory", path)
	}
	return &s, nil
}

// WriteState writes state to path atomically
func WriteState(ctx context.Context, path string, s *State) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("writing state")

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".muterstage-state-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}
