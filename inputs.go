package evecplot

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// inputFlags is the set of input-file options shared by the plot and
// check commands.
type inputFlags struct {
	CalcFilename     string
	ProjFilename     string
	PVEFilename      string
	PopNamesFilename string
	SamplesFilename  string
}

func (in *inputFlags) Flags(flags *flag.FlagSet) {
	flags.StringVar(&in.CalcFilename, "calc", "", "`file` with PCA coordinates of calculated samples (.evec text, .npy, optionally .gz)")
	flags.StringVar(&in.ProjFilename, "proj", "", "`file` with PCA coordinates of projected samples")
	flags.StringVar(&in.PVEFilename, "pve", "", "`file` with percent variance explained per component, as fractions")
	flags.StringVar(&in.PopNamesFilename, "pop-names", "pop_names.csv", "population reference table `csv` (columns Code, Type.Name, Colour, Shape, Order)")
	flags.StringVar(&in.SamplesFilename, "samples", "", "sample list `csv` (columns Code, Label), required with .npy coordinate input")
}

// inputData holds everything the pipeline consumes, loaded once per
// run and not mutated afterwards (except the controlled shape remap
// on the projected rows, which happens after the join).
type inputData struct {
	Calc []sampleRecord
	Proj []sampleRecord
	PVE  []float64
	Pops map[string]popInfo
}

// Load reads all input tables. Any missing or malformed file is an
// error; nothing is rendered on partial input.
func (in *inputFlags) Load() (*inputData, error) {
	if in.CalcFilename == "" || in.ProjFilename == "" || in.PVEFilename == "" {
		return nil, errors.New("must specify -calc, -proj, and -pve input files (or try -help)")
	}
	if strings.HasSuffix(in.CalcFilename, ".npy") && strings.HasSuffix(in.ProjFilename, ".npy") {
		// one -samples list cannot describe two matrices
		return nil, errors.New("at most one of -calc and -proj may be a .npy matrix")
	}
	var data inputData
	var err error
	log.Infof("reading %s", in.CalcFilename)
	data.Calc, err = loadCoords(in.CalcFilename, in.SamplesFilename)
	if err != nil {
		return nil, err
	}
	log.Infof("reading %s", in.ProjFilename)
	data.Proj, err = loadCoords(in.ProjFilename, in.SamplesFilename)
	if err != nil {
		return nil, err
	}
	log.Infof("reading %s", in.PVEFilename)
	data.PVE, err = loadPVE(in.PVEFilename)
	if err != nil {
		return nil, err
	}
	log.Infof("reading %s", in.PopNamesFilename)
	data.Pops, err = loadPopNames(in.PopNamesFilename)
	if err != nil {
		return nil, err
	}
	log.Infof("read %d calculated, %d projected samples, %d components, %d populations",
		len(data.Calc), len(data.Proj), len(data.PVE), len(data.Pops))
	return &data, nil
}

// components returns the highest component index (1-based) that is
// valid for every loaded sample row and the variance vector.
func (data *inputData) components() int {
	n := len(data.PVE)
	for _, table := range [][]sampleRecord{data.Calc, data.Proj} {
		for _, rec := range table {
			if len(rec.PC) < n {
				n = len(rec.PC)
			}
		}
	}
	return n
}

// checkComponent returns an error unless comp is a valid 1-based
// component index for all loaded tables.
func (data *inputData) checkComponent(comp int) error {
	if comp < 1 || comp > data.components() {
		return fmt.Errorf("component %d out of range: inputs provide components 1..%d", comp, data.components())
	}
	return nil
}
