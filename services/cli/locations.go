package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openaidmap/community-map/mapclient"
	"github.com/openaidmap/community-map/maptools"
)

func locationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List and create map markers",
	}
	cmd.AddCommand(locationsListCmd())
	cmd.AddCommand(locationsAddCmd())
	return cmd
}

func locationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all markers, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			locations, err := newClient().ListLocations(cmd.Context())
			if err != nil {
				fail(err)
			}

			if len(locations) == 0 {
				fmt.Println("no markers yet")
				return
			}

			bold := color.New(color.Bold)
			for _, loc := range locations {
				bold.Printf("#%d %s", loc.ID, loc.ToolType)
				fmt.Printf("  (%.5f, %.5f)", loc.Latitude, loc.Longitude)
				if loc.CityName != nil {
					fmt.Printf("  %s", *loc.CityName)
				}
				fmt.Printf("  %s\n", loc.CreatedAt.Format("2006-01-02 15:04"))
				if loc.Note != nil && *loc.Note != "" {
					fmt.Printf("    %s\n", *loc.Note)
				}
			}
		},
	}
}

func locationsAddCmd() *cobra.Command {
	var (
		tool   string
		lng    float64
		lat    float64
		note   string
		agents int
		hours  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit a new marker",
		Run: func(cmd *cobra.Command, args []string) {
			sub := mapclient.LocationSubmission{
				Tool:   maptools.ToolType(tool),
				Coords: maptools.Coordinates{Lng: lng, Lat: lat},
			}
			if cmd.Flags().Changed("note") {
				sub.Note = &note
			}
			if cmd.Flags().Changed("agents") {
				sub.Agents = &agents
			}
			if cmd.Flags().Changed("hours") {
				sub.Hours = &hours
			}

			location, err := newClient().CreateLocation(cmd.Context(), sub)
			if err != nil {
				fail(err)
			}

			color.Green("created marker #%d (%s)", location.ID, location.ToolType)
		},
	}

	cmd.Flags().StringVar(&tool, "tool", "", `marker category: "Ice sighting", "Homeless Shelter" or "Food bank"`)
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude in degrees")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.Flags().IntVar(&agents, "agents", 0, "number of agents sighted")
	cmd.Flags().StringVar(&hours, "hours", "", "opening hours")
	_ = cmd.MarkFlagRequired("tool")
	_ = cmd.MarkFlagRequired("lng")
	_ = cmd.MarkFlagRequired("lat")

	return cmd
}
