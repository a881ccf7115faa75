package cli

import (
	"fmt"
	"io"

	"github.com/MKhiriev/coserv/models"
)

// PrintVersion writes the build information.
func PrintVersion(w io.Writer, info models.AppBuildInfo) {
	fmt.Fprintf(w, "coserv %s\n", info.BuildVersion())
	fmt.Fprintf(w, "Build date: %s\n", info.BuildDate())
	fmt.Fprintf(w, "Build commit: %s\n", info.BuildCommit())
}

// PrintHelp writes the version followed by usage information.
func PrintHelp(w io.Writer, info models.AppBuildInfo) {
	PrintVersion(w, info)

	fmt.Fprintln(w, "\nUsage: coserv <options> [dir]")
	fmt.Fprintln(w, "\nOptions:")
	fmt.Fprint(w, newFlagSet("coserv", &options{}).FlagUsages())
	fmt.Fprintf(w, "      %-20s Directory to serve files from (defaults to current)\n", "dir")
}
