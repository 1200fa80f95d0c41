package main

import (
	"os"

	"github.com/tanpawarit/Recruitment-Dispatcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
