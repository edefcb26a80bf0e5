package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

type versionCmd struct {
	*root
	out io.Writer
}

func (v *versionCmd) Program() string        { return v.subcommand("version") }
func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Run() error {
	out := v.out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "%s version %s", v.root.program, version)
	if commit != "" {
		fmt.Fprintf(out, " (%s", commit)
		if date != "" {
			fmt.Fprintf(out, ", %s", date)
		}
		fmt.Fprint(out, ")")
	}
	fmt.Fprintln(out)
	return nil
}
