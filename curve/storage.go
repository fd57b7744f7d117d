package curve

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sgostarter/i/commerr"
	"gopkg.in/yaml.v3"
)

// yamlSnapshot is the on-disk document; Count guards against truncated files.
type yamlSnapshot struct {
	Key    string        `yaml:"key"`
	Count  int           `yaml:"count"`
	Points []*PointState `yaml:"points"`
}

// YAMLStorage keeps one YAML document per key under root. YAML carries NaN (.nan), so undefined
// samples round trip as they are.
type YAMLStorage struct {
	root string
}

func NewYAMLStorage(root string) *YAMLStorage {
	return &YAMLStorage{
		root: root,
	}
}

func (stg *YAMLStorage) snapshotFile(key string) string {
	return filepath.Join(stg.root, key+".yaml")
}

func (stg *YAMLStorage) Load(key string) ([]*PointState, error) {
	if key == "" {
		return nil, commerr.ErrInvalidArgument
	}

	d, err := os.ReadFile(stg.snapshotFile(key))
	if err != nil {
		return nil, err
	}

	var snapshot yamlSnapshot

	if err = yaml.Unmarshal(d, &snapshot); err != nil {
		return nil, err
	}

	if snapshot.Count != len(snapshot.Points) {
		return nil, fmt.Errorf("%w: %s holds %d of %d points", ErrMismatchedCurves, key,
			len(snapshot.Points), snapshot.Count)
	}

	return snapshot.Points, nil
}

func (stg *YAMLStorage) Save(key string, ps []*PointState) error {
	if key == "" {
		return commerr.ErrInvalidArgument
	}

	for _, p := range ps {
		if p == nil {
			return commerr.ErrInvalidArgument
		}
	}

	if err := os.MkdirAll(stg.root, 0700); err != nil {
		return err
	}

	d, err := yaml.Marshal(&yamlSnapshot{
		Key:    key,
		Count:  len(ps),
		Points: ps,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(stg.snapshotFile(key), d, 0600)
}
