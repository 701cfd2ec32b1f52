package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/infohazards/indranet-explorer/constant"
	"github.com/infohazards/indranet-explorer/internal/bridge"
	"github.com/infohazards/indranet-explorer/internal/config"
	"github.com/infohazards/indranet-explorer/internal/logger"
	"github.com/infohazards/indranet-explorer/model"
	"github.com/infohazards/indranet-explorer/store"
)

// app is the state shared by subcommands once the root has set up config
// and logging.
type app struct {
	dirs *store.ProjectDirs
	cfg  *model.Config
}

func (a *app) store() *store.FileStore {
	return store.NewFileStore(a.dirs,
		store.WithAtomicWrite(a.cfg.AtomicWrite),
		store.WithLogger(logger.For("store")),
	)
}

// InitCLI builds the command tree for the shipped identity.
func InitCLI() *cobra.Command {
	return newRootCmd(store.NewProjectDirs(model.DefaultIdentity()))
}

func newRootCmd(dirs *store.ProjectDirs) *cobra.Command {
	a := &app{dirs: dirs}

	RootCmd := &cobra.Command{
		Use:           constant.ProjectName,
		Short:         "indranet-explorer persists explorer state in the per-user cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitConfig(cmd, a.dirs)
			if err != nil {
				return model.NewExitError(model.UsageError, fmt.Errorf("failed to initialize config: %w", err))
			}
			if err := logger.SetupLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
				return model.NewExitError(model.UsageError, err)
			}
			a.cfg = cfg
			return nil
		},
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindFlags(RootCmd)
	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return model.NewExitError(model.UsageError, err)
	})

	RootCmd.AddCommand(
		newSaveCmd(a),
		newLoadCmd(a),
		newPathCmd(a),
		newBridgeCmd(a),
		newInitConfigCmd(a),
	)

	return RootCmd
}

func newSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save [payload]",
		Short: "Replace the saved data with payload, or with stdin when no payload is given",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd.InOrStdin(), args)
			if err != nil {
				return model.NewExitError(model.UsageError, err)
			}
			if err := a.store().Save(payload); err != nil {
				return model.NewStorageFault(err)
			}
			return nil
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Print the saved data, or {} when there is none",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			// verbatim: no trailing newline
			_, err := io.WriteString(cmd.OutOrStdout(), a.store().Load())
			return err
		},
	}
}

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the location of the data file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.store().Path()
			if err != nil {
				return model.NewStorageFault(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func newBridgeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bridge",
		Short: "Serve save_data and load_data as newline-delimited JSON on stdin/stdout",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			b := bridge.NewStorageBridge(a.store(), logger.For("bridge"))
			log := logger.For("bridge").WithField("commands", b.Commands())
			log.Info("bridge ready")

			done := make(chan error, 1)
			go func() {
				done <- b.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			}()

			select {
			case err := <-done:
				if err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
			case <-ctx.Done():
				// a save already handed to the store must finish
				b.Close()
				log.Info("bridge interrupted")
			}
			return nil
		},
	}
}

func newInitConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Generate and save a default config file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.dirs.ConfigDir()
			if err != nil {
				return model.NewStorageFault(err)
			}
			configPath, err := config.InitConfigFile(dir)
			if err != nil {
				return err
			}
			logrus.WithField("path", configPath).Debug("config file created")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Config file created at: %s\n", configPath)
			return err
		},
	}
}

// usageArgs reports positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return model.NewExitError(model.UsageError, err)
		}
		return nil
	}
}

// readPayload takes the payload from args, or from in when in is not an
// interactive terminal.
func readPayload(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no payload given: pass it as an argument or pipe it on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("error reading standard input: %w", err)
	}
	return string(data), nil
}
