package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/rezkam/weekly/tools/linters/wallclock"
)

func main() {
	singlechecker.Main(wallclock.Analyzer)
}
