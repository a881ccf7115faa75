// Package cli parses the coserv command line.
//
// Parsing is pure: [Parse] never prints, exits or changes the working
// directory. It returns a [Result] tagged with the [Action] the caller should
// take, so that a single dispatch point decides how the process exits.
package cli
