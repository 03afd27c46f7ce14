package evecplot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// version is overridden at build time via -ldflags.
var version = "development"

type cmdHandler interface {
	RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int
}

var handler = multi{
	"version":   versionCmd{},
	"-version":  versionCmd{},
	"--version": versionCmd{},

	"plot":  &plotCmd{},
	"check": &checkCmd{},
}

func Main() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		logrus.StandardLogger().Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	}
	os.Exit(handler.RunCommand(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// multi dispatches to the subcommand named by the first argument.
type multi map[string]cmdHandler

func (m multi) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	basename := filepath.Base(prog)
	if len(args) < 1 {
		fmt.Fprintf(stderr, "usage: %s command [options]\n\nAvailable commands:\n", basename)
		var names []string
		for name := range m {
			if name[0] != '-' {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(stderr, "    %s\n", name)
		}
		return 2
	}
	cmd, ok := m[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "%s: unrecognized command %q\n", basename, args[0])
		return 2
	}
	return cmd.RunCommand(prog+" "+args[0], args[1:], stdin, stdout, stderr)
}

type versionCmd struct{}

func (versionCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	name := filepath.Base(strings.Fields(prog)[0])
	fmt.Fprintf(stdout, "%s %s (%s)\n", name, version, runtime.Version())
	return 0
}
