package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"airide/internal/models"
	"airide/internal/screens"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in with a phone number",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "send-code PHONE",
		Short: "Send a verification code to PHONE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr := screens.NewAuthScreen(a.api, a.session)
			defer open(cmd, scr)()

			scr.Phone = args[0]
			if err := scr.SendCode(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Code sent to %s\n", scr.Phone)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "verify PHONE CODE",
		Short: "Verify the code and sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr := screens.NewAuthScreen(a.api, a.session)
			defer open(cmd, scr)()

			scr.Phone, scr.Code = args[0], args[1]
			u, err := scr.Verify()
			if err != nil {
				return err
			}
			if scr.Step() == screens.StepUserType {
				fmt.Fprintf(cmd.OutOrStdout(), "New number. Finish with: airide register %s --type rider|driver\n", scr.Phone)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", u.Phone, u.UserType)
			return nil
		},
	})
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var userType, language string
	cmd := &cobra.Command{
		Use:   "register PHONE",
		Short: "Create the account for a verified phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr := screens.NewUserTypeScreen(a.api, a.session, args[0])
			defer open(cmd, scr)()

			scr.UserType, scr.Language = userType, language
			u, err := scr.Submit()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome! Signed in as %s (%s)\n", u.Phone, u.UserType)
			return nil
		},
	}
	cmd.Flags().StringVar(&userType, "type", "", "rider or driver")
	cmd.Flags().StringVar(&language, "language", models.LanguageEnglish, "en or am")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newLanguageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "language en|am",
		Short: "Change the app language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := screens.NewProfileScreen(a.session, a.cfg.BackendURL)
			if err := p.SetLanguage(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s\n", args[0])
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the user and driver stored on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			screens.NewProfileScreen(a.session, a.cfg.BackendURL).Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile stored on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := screens.NewProfileScreen(a.session, a.cfg.BackendURL)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Backend:  %s\n", p.BackendLabel())
			u := p.User()
			if u == nil {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}
			if remote {
				me, err := a.api.Me(cmd.Context())
				if err != nil {
					return err
				}
				u = me
			}
			fmt.Fprintf(out, "Phone:    %s\nType:     %s\nLanguage: %s\n", u.Phone, u.UserType, u.Language)
			if d := p.Driver(); d != nil {
				state := "offline"
				if d.Online {
					state = "online"
				}
				fmt.Fprintf(out, "Driver:   %s, %s %s (%s), %s\n", d.Name, d.Vehicle.Make, d.Vehicle.Model, d.Vehicle.Plate, state)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "load the profile from the backend")
	return cmd
}
