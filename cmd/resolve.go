package main

import (
	"encoding/json"
	"fmt"

	"github.com/chigarow/maps-to-waze-app/internal/models"
	"github.com/chigarow/maps-to-waze-app/internal/navigation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	resolveAppLink bool
	resolveJSON    bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Resolve one map link and print its Waze link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newResolutionService(prometheus.NewRegistry())
		if err != nil {
			return err
		}

		result := svc.Resolve(cmd.Context(), args[0])
		coords, ok := result.Coordinates()
		if !ok {
			return models.ErrNoMatch
		}

		out := cmd.OutOrStdout()
		switch {
		case resolveJSON:
			return json.NewEncoder(out).Encode(map[string]any{
				"latitude":     coords.Latitude,
				"longitude":    coords.Longitude,
				"source":       result.Source(),
				"waze_url":     navigation.WazeWebURL(coords),
				"waze_app_url": navigation.WazeAppURI(coords),
			})
		case resolveAppLink:
			_, err = fmt.Fprintln(out, navigation.WazeAppURI(coords))
		default:
			_, err = fmt.Fprintln(out, navigation.WazeWebURL(coords))
		}
		return err
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveAppLink, "app", false, "print the waze:// app link instead of the web link")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "print coordinates and links as JSON")
	rootCmd.AddCommand(resolveCmd)
}
