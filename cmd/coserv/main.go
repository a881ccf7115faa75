package main

import (
	"context"
	"os"

	"github.com/MKhiriev/coserv/internal/app"
	"github.com/MKhiriev/coserv/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	os.Exit(app.Run(context.Background(), os.Args[1:], app.Options{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		BuildInfo: info,
	}))
}
