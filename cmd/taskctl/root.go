package main

import (
	"context"
	"io"

	"taskboard/pkg/board"
	"taskboard/pkg/config"
	"taskboard/pkg/preference"
	"taskboard/pkg/taskapi"
	"taskboard/pkg/view"
	"taskboard/utils"

	"github.com/spf13/cobra"
)

type cli struct {
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
	isTerminal func() bool

	debug bool
	trace bool

	cfg      config.Config
	backends *config.Backends
}

func run(ctx context.Context, c *cli, args []string) error {
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	defer c.close()
	return root.ExecuteContext(ctx)
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "List, create, update and delete tasks on the task API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			utils.InitLogger(c.debug, c.trace)
			c.cfg = config.FromEnv()
			backends, err := config.OpenBackends(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			c.backends = backends
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "sets log level to debug")
	root.PersistentFlags().BoolVar(&c.trace, "trace", false, "sets log level to trace")

	root.AddCommand(
		newListCmd(c),
		newShowCmd(c),
		newAddCmd(c),
		newStatusCmd(c),
		newRmCmd(c),
		newSeedCmd(c),
		newConfigCmd(c),
	)
	return root
}

func (c *cli) close() {
	if c.backends != nil {
		c.backends.Close()
		c.backends = nil
	}
}

// client points at the API URL currently stored in preferences.
func (c *cli) client(ctx context.Context) (*taskapi.Client, error) {
	apiURL, err := preference.ResolveAPIURL(ctx, c.backends.Preferences)
	if err != nil {
		return nil, err
	}
	return taskapi.NewClient(apiURL, taskapi.WithTimeout(c.cfg.RequestTimeout)), nil
}

func (c *cli) viewOptions(apiURL string) view.Options {
	return view.Options{APIURL: apiURL, TimeLayout: c.cfg.TimeLayout}
}

func (c *cli) controller(ctx context.Context) (*board.Controller, error) {
	client, err := c.client(ctx)
	if err != nil {
		return nil, err
	}
	return board.NewController(client, c.viewOptions(client.BaseURL())), nil
}
