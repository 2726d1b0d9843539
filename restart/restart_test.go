package restart

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowphys/chebdns/utils"
)

func TestStoreRoundTrip(t *testing.T) {
	var (
		path = filepath.Join(t.TempDir(), "state.gob")
		m    = utils.NewCMatrix(3, 2)
	)
	for i := range m.Data {
		m.Data[i] = complex(float64(i), -float64(i))
	}
	st := NewStore()
	st.SetField("temp", m)
	st.SetScalar("time", 1.25)
	assert.NoError(t, st.Write(path))

	got, err := Read(path)
	assert.NoError(t, err)

	tm, err := got.GetField("temp")
	assert.NoError(t, err)
	nr, nc := tm.Dims()
	assert.Equal(t, 3, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, m.Data, tm.Data)

	v, err := got.GetScalar("time")
	assert.NoError(t, err)
	assert.Equal(t, 1.25, v)
}

func TestStoreCopiesData(t *testing.T) {
	// SetField and GetField both copy; mutating either side must not leak
	// into the store.
	m := utils.NewCMatrix(2, 2)
	st := NewStore()
	st.SetField("f", m)
	m.Data[0] = 5

	got, err := st.GetField("f")
	assert.NoError(t, err)
	assert.Equal(t, complex128(0), got.Data[0])
	got.Data[1] = 7

	again, _ := st.GetField("f")
	assert.Equal(t, complex128(0), again.Data[1])
}

func TestStoreMissingKeys(t *testing.T) {
	st := NewStore()
	_, err := st.GetField("absent")
	assert.Error(t, err)
	_, err = st.GetScalar("absent")
	assert.Error(t, err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.gob"))
	assert.Error(t, err)
}
