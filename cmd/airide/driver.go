package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"

	"airide/internal/models"
	"airide/internal/screens"
)

func newDriverCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driver",
		Short: "Driver home: registration, availability, location and earnings",
	}
	cmd.AddCommand(
		newDriverRegisterCmd(a),
		newDriverOnlineCmd(a, "online", true),
		newDriverOnlineCmd(a, "offline", false),
		newDriverToggleCmd(a),
		newDriverLocationCmd(a),
		newDriverShowCmd(a),
		newDriverTrackCmd(a),
		newDriverTripCmd(a),
		newDriverEarningsCmd(a),
	)
	return cmd
}

func printDriver(w io.Writer, d *models.Driver) {
	state := "offline"
	if d.Online {
		state = "online"
	}
	fmt.Fprintf(w, "%s  %s  %s %s (%s)  %s\n", d.ID, d.Name, d.Vehicle.Make, d.Vehicle.Model, d.Vehicle.Plate, state)
	if loc := d.LatestLocation; loc != nil {
		fmt.Fprintf(w, "  last seen at %.5f, %.5f on %s\n", loc.Lat, loc.Lng, loc.Timestamp.Local().Format(time.RFC1123))
	}
}

func newDriverRegisterCmd(a *app) *cobra.Command {
	var form screens.RegistrationForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register this device's driver and vehicle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scr := screens.NewDriverHomeScreen(a.api, a.session)
			defer open(cmd, scr)()

			scr.Form = form
			d, err := scr.Register()
			if err != nil {
				return err
			}
			printDriver(cmd.OutOrStdout(), d)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "full name")
	f.StringVar(&form.Phone, "phone", "", "phone number")
	f.StringVar(&form.Make, "make", "", "vehicle make")
	f.StringVar(&form.Model, "model", "", "vehicle model")
	f.StringVar(&form.Plate, "plate", "", "plate number")
	f.StringVar(&form.Color, "color", "", "vehicle color (optional)")
	f.StringVar(&form.Year, "year", "", "vehicle year (optional)")
	return cmd
}

func newDriverOnlineCmd(a *app, use string, online bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: "Go " + use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scr := screens.NewDriverHomeScreen(a.api, a.session)
			defer open(cmd, scr)()

			d, err := scr.SetOnline(online)
			if err != nil {
				return err
			}
			printDriver(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func newDriverToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch between online and offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scr := screens.NewDriverHomeScreen(a.api, a.session)
			defer open(cmd, scr)()

			d, err := scr.ToggleOnline()
			if err != nil {
				return err
			}
			printDriver(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func newDriverLocationCmd(a *app) *cobra.Command {
	var speed, heading float64
	cmd := &cobra.Command{
		Use:   "location LAT LNG",
		Short: "Report the current position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr := screens.NewDriverHomeScreen(a.api, a.session)
			defer open(cmd, scr)()

			fix, err := screens.ParseFix(args[0], args[1])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("speed") {
				if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < 0 {
					return &screens.ValidationError{Field: "speed", Message: "Speed must be a non-negative number"}
				}
				fix.Speed = &speed
			}
			if cmd.Flags().Changed("heading") {
				if math.IsNaN(heading) || math.IsInf(heading, 0) {
					return &screens.ValidationError{Field: "heading", Message: "Heading must be a number"}
				}
				fix.Heading = &heading
			}
			d, err := scr.SendFix(fix)
			if err != nil {
				return err
			}
			printDriver(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().Float64Var(&speed, "speed", 0, "speed in m/s")
	cmd.Flags().Float64Var(&heading, "heading", 0, "heading in degrees")
	return cmd
}

func newDriverShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Reload the registered driver from the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scr := screens.NewDriverHomeScreen(a.api, a.session)
			defer open(cmd, scr)()

			d, err := scr.Refresh()
			if err != nil {
				return err
			}
			printDriver(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func newDriverTrackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Print the reported positions as GeoJSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := a.session.Driver()
			if d == nil {
				return screens.ErrNotRegistered
			}
			raw, err := a.api.GetDriverTrack(cmd.Context(), d.ID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}
}

func newDriverTripCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trip FARE",
		Short: "Record a completed trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr := screens.NewTripScreen(a.api, a.session)
			defer open(cmd, scr)()

			scr.Fare = args[0]
			trip, err := scr.Submit()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Trip %s: fare %s, service fee %s\n",
				trip.ID, screens.FormatFare(trip.Fare), screens.FormatFare(trip.ServiceFee))
			return nil
		},
	}
}

func newDriverEarningsCmd(a *app) *cobra.Command {
	var weeks int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "earnings",
		Short: "Show the earnings of the current week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scr := screens.NewEarningsScreen(a.api, a.session, time.Now())
			defer open(cmd, scr)()

			for ; weeks < 0; weeks++ {
				scr.PrevWeek()
			}
			for ; weeks > 0; weeks-- {
				scr.NextWeek()
			}
			sum, err := scr.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, sum)
			}
			fmt.Fprintf(out, "Week %s\n", scr.Week().Label())
			fmt.Fprintf(out, "Trips:        %d\n", sum.TripCount)
			fmt.Fprintf(out, "Total fares:  %s\n", screens.FormatFare(sum.TotalFares))
			fmt.Fprintf(out, "Service fees: %s\n", screens.FormatFare(sum.TotalServiceFees))
			fmt.Fprintf(out, "Net:          %s\n", screens.FormatFare(sum.NetAmount))
			for _, t := range sum.Trips {
				fmt.Fprintf(out, "  %s  %s\n", t.CreatedAt.Local().Format("Mon 2 Jan 15:04"), screens.FormatFare(t.Fare))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&weeks, "week", 0, "week offset from the current one, e.g. -1 for last week")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw summary")
	return cmd
}
