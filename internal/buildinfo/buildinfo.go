// Package buildinfo prints the start-up banner and build metadata.
//
// The variables are meant to be set at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/drivequiz/internal/buildinfo.Version=v1.2.0"
package buildinfo

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

const AppName = "drivequiz"

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBanner writes the application name as ASCII art.
func PrintBanner(w io.Writer) {
	fig := figure.NewFigure(AppName, "cybermedium", true)
	fmt.Fprintln(w, fig.String())
}

// PrintBuildData writes the version block.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}

// Short is a one-line version string.
func Short() string {
	return fmt.Sprintf("%s %s (%s, %s)", AppName, Version, Commit, Date)
}
