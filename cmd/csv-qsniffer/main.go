// Command csv-qsniffer detects the dialect of a CSV file: delimiter, quote
// character, escape character, and header presence, using the Table
// Uniformity Method implemented by package csvqsniffer.
package main

import (
	"fmt"
	"os"

	"github.com/oleg578/csvqsniffer/cmd/csv-qsniffer/commands"
)

var version = "dev"

func main() {
	commands.Version = version
	root := commands.NewDetectCommand()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "csv-qsniffer:", err)
		os.Exit(commands.ExitCode(err))
	}
}
