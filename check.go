package evecplot

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
)

// checkCmd loads the same inputs as plot and reports join coverage:
// how many samples matched the population table and which codes were
// dropped. plot drops unmatched rows silently, as the original
// workflow always has; this command is the loud version.
type checkCmd struct {
	inputs inputFlags
}

func (cmd *checkCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := cmd.run(prog, args, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	return 0
}

func (cmd *checkCmd) run(prog string, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cmd.inputs.Flags(flags)
	outputFilename := flags.String("o", "-", "write JSON report to `file`")
	err := flags.Parse(args)
	if err == flag.ErrHelp {
		return nil
	} else if err != nil {
		return err
	} else if flags.NArg() > 0 {
		return fmt.Errorf("errant command line arguments after parsed flags: %v", flags.Args())
	}

	data, err := cmd.inputs.Load()
	if err != nil {
		return err
	}

	var report struct {
		CalcSamples int
		ProjSamples int
		Populations int
		Components  int
		MatchedCalc int
		MatchedProj int
		DroppedCalc []string `json:",omitempty"`
		DroppedProj []string `json:",omitempty"`
		TypeNames   []string
	}
	calc, droppedCalc := joinPops(data.Calc, data.Pops, false)
	proj, droppedProj := joinPops(data.Proj, data.Pops, true)
	report.CalcSamples = len(data.Calc)
	report.ProjSamples = len(data.Proj)
	report.Populations = len(data.Pops)
	report.Components = data.components()
	report.MatchedCalc = len(calc)
	report.MatchedProj = len(proj)
	report.DroppedCalc = droppedCalc
	report.DroppedProj = droppedProj
	report.TypeNames = typeLevels(combine(calc, proj))

	var output io.WriteCloser
	if *outputFilename == "-" {
		output = nopCloser{stdout}
	} else {
		output, err = os.OpenFile(*outputFilename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
		if err != nil {
			return err
		}
		defer output.Close()
	}
	bufw := bufio.NewWriter(output)
	enc := json.NewEncoder(bufw)
	enc.SetIndent("", "\t")
	err = enc.Encode(report)
	if err != nil {
		return err
	}
	err = bufw.Flush()
	if err != nil {
		return err
	}
	err = output.Close()
	if err != nil {
		return err
	}
	if n := len(droppedCalc) + len(droppedProj); n > 0 {
		return fmt.Errorf("%d sample codes missing from %s", n, cmd.inputs.PopNamesFilename)
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
