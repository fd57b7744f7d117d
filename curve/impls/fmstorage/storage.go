package fmstorage

import (
	"path/filepath"
	"sync"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libcalculusgrapher/curve"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
)

func NewFMStorage(root string, storage stg.FileStorage) curve.Storage {
	return NewFMStorageEx(root, storage, "curves.json", false)
}

// NewFMStorageEx keeps every snapshot in memory and mirrors the whole set to one JSON file.
func NewFMStorageEx(root string, storage stg.FileStorage, fileName string, prettySerial bool) curve.Storage {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &fmStorageImpl{
		curveStorage: mwf.NewMemWithFile[map[string][]*pointD, mwf.Serial, mwf.Lock](
			make(map[string][]*pointD), &mwf.JSONSerial{
				MarshalIndent: prettySerial,
			}, &sync.RWMutex{}, filepath.Join(root, fileName), storage),
	}
}

// pointD stores undefined values as null; JSON has no NaN.
type pointD struct {
	X                     float64              `json:"x"`
	Y                     *float64             `json:"y"`
	Classification        curve.Classification `json:"classification"`
	InitialY              *float64             `json:"initialY"`
	InitialClassification curve.Classification `json:"initialClassification"`
}

func toNullable(v float64) *float64 {
	if curve.IsUndefined(v) {
		return nil
	}

	return &v
}

func fromNullable(v *float64) float64 {
	if v == nil {
		return curve.Undefined
	}

	return *v
}

type fmStorageImpl struct {
	curveStorage *mwf.MemWithFile[map[string][]*pointD, mwf.Serial, mwf.Lock]
}

func (impl *fmStorageImpl) Load(key string) (ps []*curve.PointState, err error) {
	impl.curveStorage.Read(func(d map[string][]*pointD) {
		pds, ok := d[key]
		if !ok {
			err = commerr.ErrNotFound

			return
		}

		ps = make([]*curve.PointState, 0, len(pds))

		for _, pd := range pds {
			ps = append(ps, &curve.PointState{
				X:                     pd.X,
				Y:                     fromNullable(pd.Y),
				Classification:        pd.Classification,
				InitialY:              fromNullable(pd.InitialY),
				InitialClassification: pd.InitialClassification,
			})
		}
	})

	return
}

func (impl *fmStorageImpl) Save(key string, ps []*curve.PointState) error {
	if key == "" {
		return commerr.ErrInvalidArgument
	}

	pds := make([]*pointD, 0, len(ps))

	for _, p := range ps {
		if p == nil {
			return commerr.ErrInvalidArgument
		}

		pds = append(pds, &pointD{
			X:                     p.X,
			Y:                     toNullable(p.Y),
			Classification:        p.Classification,
			InitialY:              toNullable(p.InitialY),
			InitialClassification: p.InitialClassification,
		})
	}

	return impl.curveStorage.Change(func(oldD map[string][]*pointD) (map[string][]*pointD, error) {
		if len(oldD) == 0 {
			oldD = make(map[string][]*pointD)
		}

		oldD[key] = pds

		return oldD, nil
	})
}
