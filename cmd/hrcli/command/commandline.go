package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/locvowork/hr_records/internal/database"
	"github.com/locvowork/hr_records/internal/hrclient"
	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/mirror"
	"github.com/locvowork/hr_records/internal/store"
)

const (
	backendFile      = "file"
	backendDatastore = "datastore"
)

var _ store.Gateway = (*hrclient.Client)(nil)

// commandline owns the application context of one invocation: the API
// client, the mirror and the store built on them.
type commandline struct {
	v *viper.Viper

	client    *hrclient.Client
	mirror    mirror.Mirror
	store     *store.Store
	datastore *database.DatastoreClient
	logFile   io.Closer
}

func NewCommandLine() *commandline {
	v := viper.New()
	v.SetEnvPrefix("HR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &commandline{v: v}
}

// NewCmd builds the root command with every subcommand registered.
func (cl *commandline) NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hrcli",
		Short: "Command line client for the HR records API",
		Long: `Command line client for the HR records API.
Environment variables:
  HR_API_URL=http://localhost:3000
  HR_MIRROR_BACKEND=file
  HR_MIRROR_PATH=$XDG_CONFIG_HOME/hr_records/mirror.json
  HR_DATASTORE_PROJECT=
  HR_DATASTORE_NAMESPACE=default
  HR_TIMEOUT=15s
  HR_LOG_FILE=`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}
	cl.configureFlags(cmd)
	cl.Register(cmd)
	return cmd
}

func (cl *commandline) configureFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("api-url", "http://localhost:3000", "HR records API base URL")
	cmd.PersistentFlags().String("mirror-backend", backendFile, "local mirror backend: file or datastore")
	cmd.PersistentFlags().String("mirror-path", defaultMirrorPath(), "mirror file used by the file backend")
	cmd.PersistentFlags().String("datastore-project", "", "Google Cloud project of the datastore backend")
	cmd.PersistentFlags().String("datastore-namespace", "default", "datastore namespace, one per profile")
	cmd.PersistentFlags().Duration("timeout", 15*time.Second, "per-request timeout")
	cmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	cmd.PersistentFlags().String("log-level", "warn", "log level")

	for _, name := range []string{"api-url", "mirror-backend", "mirror-path", "datastore-project", "datastore-namespace", "timeout", "log-file", "log-level"} {
		_ = cl.v.BindPFlag(name, cmd.PersistentFlags().Lookup(name))
	}
}

func defaultMirrorPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "hr_records", "mirror.json")
}

// Register adds every subcommand to rootCmd.
func (cl *commandline) Register(rootCmd *cobra.Command) *cobra.Command {
	// session
	cl.login(rootCmd)
	cl.logout(rootCmd)
	cl.status(rootCmd)
	// collections
	cl.employees(rootCmd)
	cl.payroll(rootCmd)
	cl.attendance(rootCmd)
	cl.leave(rootCmd)
	cl.reviews(rootCmd)

	return rootCmd
}

// connect builds the client, the mirror and the store for this invocation.
func (cl *commandline) connect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := cl.initLogging(cmd); err != nil {
		return err
	}

	m, err := cl.openMirror(ctx)
	if err != nil {
		return err
	}
	cl.mirror = m

	cl.client = hrclient.New(cl.v.GetString("api-url"),
		hrclient.WithTimeout(cl.v.GetDuration("timeout")),
		hrclient.WithTokenSource(func() string {
			if cl.store == nil {
				return ""
			}
			return cl.store.Token()
		}),
	)
	cl.store = store.New(ctx, cl.client, cl.mirror)
	return nil
}

func (cl *commandline) disconnect(cmd *cobra.Command, args []string) {
	if cl.datastore != nil {
		if err := cl.datastore.Close(); err != nil {
			logger.WarnLog(cmd.Context(), "Failed to close datastore client: %v", err)
		}
	}
	if cl.logFile != nil {
		_ = cl.logFile.Close()
	}
}

func (cl *commandline) initLogging(cmd *cobra.Command) error {
	level := cl.v.GetString("log-level")
	path := cl.v.GetString("log-file")
	if path == "" {
		logger.InitWriter(cmd.ErrOrStderr(), level)
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o664)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	cl.logFile = f
	logger.InitWriter(f, level)
	return nil
}

func (cl *commandline) openMirror(ctx context.Context) (mirror.Mirror, error) {
	switch backend := cl.v.GetString("mirror-backend"); backend {
	case backendFile:
		return mirror.NewFileMirror(cl.v.GetString("mirror-path")), nil
	case backendDatastore:
		project := cl.v.GetString("datastore-project")
		if project == "" {
			return nil, fmt.Errorf("--datastore-project is required for the %s backend", backendDatastore)
		}
		dc, err := database.OpenDatastoreClient(ctx, project, cl.v.GetString("datastore-namespace"))
		if err != nil {
			return nil, err
		}
		cl.datastore = dc
		return mirror.NewDatastoreMirror(dc), nil
	default:
		return nil, fmt.Errorf("unknown mirror backend %q, available: %s, %s", backend, backendFile, backendDatastore)
	}
}

// leafCommand wires connect/disconnect around a subcommand.
func (cl *commandline) leafCommand(c *cobra.Command) *cobra.Command {
	c.PreRunE = cl.connect
	c.PostRun = cl.disconnect
	return c
}
