package curve

// Source is the read-only surface of a curve that derived curves and renderers pull from.
type Source interface {
	ID() uint64
	Config() Config
	Len() int
	X(i int) float64
	Y(i int) float64
	ClassificationAt(i int) Classification
}

// Storage persists curve snapshots by key.
type Storage interface {
	Load(key string) ([]*PointState, error)
	Save(key string, ps []*PointState) error
}
