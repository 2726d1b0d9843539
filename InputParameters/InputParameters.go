package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title        string  `yaml:"Title"`
	Nx           int     `yaml:"Nx"`
	Ny           int     `yaml:"Ny"`
	Ra           float64 `yaml:"Ra"`
	Pr           float64 `yaml:"Pr"`
	Dt           float64 `yaml:"Dt"`
	Aspect       float64 `yaml:"Aspect"` // half-width of the periodic direction over pi
	FinalTime    float64 `yaml:"FinalTime"`
	SaveInterval float64 `yaml:"SaveInterval"`
	RestartFile  string  `yaml:"RestartFile"`
}

// NewDefaultParameters returns the laminar convection roll case, small
// enough to run in seconds.
func NewDefaultParameters() *InputParameters {
	return &InputParameters{
		Title:        "rayleigh-benard",
		Nx:           64,
		Ny:           33,
		Ra:           1e5,
		Pr:           1,
		Dt:           2e-3,
		Aspect:       1,
		FinalTime:    10,
		SaveInterval: 0.5,
	}
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d x %d]\t\t= Nx x Ny\n", ip.Nx, ip.Ny)
	fmt.Printf("%8.3e\t\t= Ra\n", ip.Ra)
	fmt.Printf("%8.5f\t\t= Pr\n", ip.Pr)
	fmt.Printf("%8.5f\t\t= Dt\n", ip.Dt)
	fmt.Printf("%8.5f\t\t= Aspect\n", ip.Aspect)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= SaveInterval\n", ip.SaveInterval)
	if ip.RestartFile != "" {
		fmt.Printf("[%s]\t\t= RestartFile\n", ip.RestartFile)
	}
}
