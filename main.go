package main

import (
	"os"

	"github.com/bnema/zprune/internal/adapters/in/cli"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	os.Exit(cli.Execute(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}))
}
