// Package restart persists simulation state as an opaque store of
// named fields and scalars. The on-disk container is encoding/gob; the
// layout is invisible to callers, which address everything by name.
package restart

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/flowphys/chebdns/utils"
)

type fieldData struct {
	Nr, Nc int
	Data   []complex128
}

// Store is a keyed collection of spectral fields and scalar parameters.
type Store struct {
	Fields  map[string]fieldData
	Scalars map[string]float64
}

func NewStore() *Store {
	return &Store{
		Fields:  make(map[string]fieldData),
		Scalars: make(map[string]float64),
	}
}

func (s *Store) SetField(name string, m utils.CMatrix) {
	nr, nc := m.Dims()
	data := make([]complex128, len(m.Data))
	copy(data, m.Data)
	s.Fields[name] = fieldData{Nr: nr, Nc: nc, Data: data}
}

func (s *Store) GetField(name string) (m utils.CMatrix, err error) {
	fd, ok := s.Fields[name]
	if !ok {
		err = fmt.Errorf("field %q not present in restart store", name)
		return
	}
	data := make([]complex128, len(fd.Data))
	copy(data, fd.Data)
	m = utils.NewCMatrix(fd.Nr, fd.Nc, data)
	return
}

func (s *Store) SetScalar(name string, v float64) { s.Scalars[name] = v }

func (s *Store) GetScalar(name string) (v float64, err error) {
	v, ok := s.Scalars[name]
	if !ok {
		err = fmt.Errorf("scalar %q not present in restart store", name)
	}
	return
}

// Write serializes the store to path, truncating any existing file.
func (s *Store) Write(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	if err = gob.NewEncoder(f).Encode(s); err != nil {
		err = fmt.Errorf("encoding restart store %s: %w", path, err)
	}
	return
}

// Read loads a store previously produced by Write.
func Read(path string) (s *Store, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	s = NewStore()
	if err = gob.NewDecoder(f).Decode(s); err != nil {
		err = fmt.Errorf("decoding restart store %s: %w", path, err)
		s = nil
	}
	return
}
