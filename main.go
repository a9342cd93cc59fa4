package main

import (
	"os"

	"cashcanvas/ledger/cmd/analyze"
	exportcmd "cashcanvas/ledger/cmd/export"
	"cashcanvas/ledger/cmd/importcsv"
	"cashcanvas/ledger/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(importcsv.Cmd)
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(exportcmd.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
