package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"airide/internal/api"
	"airide/internal/config"
	"airide/internal/logger"
	"airide/internal/session"
	"airide/internal/storage"
)

// app is what every subcommand works with. It is built once the flags are
// parsed.
type app struct {
	cfg     config.Client
	kv      storage.KV
	session *session.Store
	api     *api.Client
}

func newRootCmd() *cobra.Command {
	v := config.NewClientViper()
	a := &app{}

	root := &cobra.Command{
		Use:           "airide",
		Short:         "Ride-hailing client for riders and drivers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.start(cmd, v)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.stop()
		},
	}

	flags := root.PersistentFlags()
	flags.String("backend-url", "", "backend origin, e.g. http://localhost:8001 (env AIRIDE_BACKEND_URL)")
	flags.String("store", "", "path of the device store")
	flags.Duration("timeout", 0, "per-request timeout")
	flags.BoolP("verbose", "v", false, "log requests at debug level")
	_ = v.BindPFlag("backend_url", flags.Lookup("backend-url"))
	_ = v.BindPFlag("store_path", flags.Lookup("store"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(
		newAuthCmd(a),
		newRegisterCmd(a),
		newLanguageCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newDriverCmd(a),
		newStatusCmd(a),
		newPingCmd(a),
	)
	return root
}

func (a *app) start(cmd *cobra.Command, v *viper.Viper) error {
	a.cfg = config.LoadClient(v)

	level := logrus.InfoLevel
	if v.GetBool("verbose") {
		level = logrus.DebugLevel
	}
	logger.Setup(a.cfg.LogPath, level)

	kv, err := storage.OpenSQLite(a.cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open device store: %w", err)
	}
	a.kv = kv
	a.session = session.New(kv)
	a.session.Initialize(cmd.Context())
	a.api = api.New(a.cfg.BackendURL, api.WithTokenSource(a.session), api.WithTimeout(a.cfg.Timeout))

	logrus.WithFields(logrus.Fields{
		"command": cmd.CommandPath(),
		"backend": a.cfg.BackendLabel(),
	}).Debug("Command started")
	return nil
}

func (a *app) stop() error {
	if a.kv == nil {
		return nil
	}
	return a.kv.Close()
}

// viewer is implemented by every screen with a lifetime.
type viewer interface {
	Open(parent context.Context)
	Close()
}

// open starts s under the command's context and returns its Close.
func open(cmd *cobra.Command, s viewer) func() {
	s.Open(cmd.Context())
	return s.Close
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
