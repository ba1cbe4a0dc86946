package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/serialization"
)

// Save writes the module's state dict to path in SafeTensors format.
func Save(path string, m Module, metadata map[string]string) error {
	if err := serialization.WriteFile(path, m.StateDict(), metadata); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

// Load reads a state dict from path into m and returns the file's metadata.
func Load(path string, m Module) (map[string]string, error) {
	stateDict, metadata, err := serialization.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	if err := m.LoadStateDict(stateDict); err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return metadata, nil
}
