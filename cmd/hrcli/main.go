package main

import (
	"os"

	"github.com/locvowork/hr_records/cmd/hrcli/command"
)

func main() {
	if err := command.NewCommandLine().NewCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
