package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/openaidmap/community-map/mapclient"
)

var apiURL string

func newClient() *mapclient.Client {
	return mapclient.New(apiURL)
}

func fail(err error) {
	color.Red("error: %v", err)
	os.Exit(1)
}

func main() {
	_ = godotenv.Load() // ignore missing file

	defaultURL := os.Getenv("COMMUNITY_MAP_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}

	root := &cobra.Command{
		Use:   "communitymap",
		Short: "Terminal client for the community map API",
		Long:  "List and submit point-of-interest markers and their comments from the terminal.",
	}
	root.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "base URL of the community map API")

	root.AddCommand(locationsCmd())
	root.AddCommand(commentsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
