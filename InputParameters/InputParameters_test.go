package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	yamlInput := `
Title: "wide box"
Nx: 128
Ny: 65
Ra: 1.e6
Pr: 0.7
Dt: 0.001
Aspect: 2.0
FinalTime: 25
SaveInterval: 1.0
RestartFile: "state.gob"
`
	ip := NewDefaultParameters()
	assert.NoError(t, ip.Parse([]byte(yamlInput)))
	assert.Equal(t, "wide box", ip.Title)
	assert.Equal(t, 128, ip.Nx)
	assert.Equal(t, 65, ip.Ny)
	assert.Equal(t, 1.e6, ip.Ra)
	assert.Equal(t, 0.7, ip.Pr)
	assert.Equal(t, 2.0, ip.Aspect)
	assert.Equal(t, "state.gob", ip.RestartFile)
}

func TestParsePartial(t *testing.T) {
	// Fields absent from the file keep their defaults
	ip := NewDefaultParameters()
	assert.NoError(t, ip.Parse([]byte("Ra: 2.e4\n")))
	assert.Equal(t, 2.e4, ip.Ra)
	assert.Equal(t, 64, ip.Nx)
	assert.Equal(t, 2e-3, ip.Dt)
}

func TestParseMalformed(t *testing.T) {
	ip := NewDefaultParameters()
	assert.Error(t, ip.Parse([]byte("Nx: [not an int\n")))
}
