package scene

import (
	_ "embed"

	"github.com/BurntSushi/toml"

	"github.com/branchplot/branchplot/pkg/errors"
)

// story.toml is the single source of truth for the narrative. It is
// embedded so the binary has no runtime inputs.
//
//go:embed story.toml
var storyTOML []byte

// Source returns the raw embedded story document. Cache keys are
// derived from it so any edit to the narrative invalidates cached
// renders.
func Source() []byte {
	return storyTOML
}

// Load decodes and validates the embedded story.
func Load() (*Story, error) {
	var s Story
	if err := toml.Unmarshal(storyTOML, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode embedded story")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
