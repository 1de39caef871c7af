package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"taskboard/pkg/board"
	"taskboard/pkg/preference"
	"taskboard/pkg/task"
	"taskboard/pkg/view"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const configKeyAPIURL = "api-url"

// printView writes v and turns an error view into a non-zero exit.
func (c *cli) printView(v view.View) error {
	if err := view.WriteText(c.out, v); err != nil {
		return err
	}
	if v.Kind == view.KindError {
		return errors.New(v.Error.Message)
	}
	return nil
}

func newListCmd(c *cli) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			return c.printView(ctl.RefreshSearch(cmd.Context(), strings.TrimSpace(search)))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show tasks matching this text")
	return cmd
}

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client(cmd.Context())
			if err != nil {
				return err
			}
			t, err := client.GetTask(cmd.Context(), task.ID(args[0]))
			if err != nil {
				return fmt.Errorf("failed to get task %s: %w", args[0], err)
			}
			return c.printView(view.Render([]task.Task{t}, nil, c.viewOptions(client.BaseURL())))
		},
	}
}

func newAddCmd(c *cli) *cobra.Command {
	var form board.CreateForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			v, _, err := ctl.Create(cmd.Context(), form)
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
			return c.printView(v)
		},
	}
	cmd.Flags().StringVarP(&form.Title, "title", "t", "", "task title")
	cmd.Flags().StringVarP(&form.Description, "description", "d", "", "task description")
	return cmd
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <TODO|DOING|DONE>",
		Short: "Change the status of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			v, err := ctl.UpdateStatus(cmd.Context(), task.ID(args[0]), args[1])
			if err != nil {
				return fmt.Errorf("failed to update task %s: %w", args[0], err)
			}
			return c.printView(v)
		},
	}
}

func newRmCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			v, deleted, err := ctl.Delete(cmd.Context(), task.ID(args[0]), c.confirmer(yes))
			if err != nil {
				return fmt.Errorf("failed to delete task %s: %w", args[0], err)
			}
			if !deleted {
				fmt.Fprintln(c.out, "Aborted.")
				return nil
			}
			return c.printView(v)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

// confirmer prompts on a terminal. Without one, and without --yes, the
// answer is no.
func (c *cli) confirmer(yes bool) board.Confirmer {
	return board.ConfirmFunc(func(_ context.Context, prompt string) bool {
		if yes {
			return true
		}
		if !c.isTerminal() {
			log.Warn().Msg("stdin is not a terminal, pass --yes to delete")
			return false
		}
		fmt.Fprintf(c.out, "%s [y/N] ", prompt)
		answer, err := bufio.NewReader(c.in).ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}

func newSeedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixtures.json>",
		Short: "Create every task listed in a JSON fixtures file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read fixtures: %w", err)
			}
			var forms []board.CreateForm
			if err := json.Unmarshal(raw, &forms); err != nil {
				return fmt.Errorf("failed to parse fixtures %s: %w", args[0], err)
			}

			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			var v view.View
			for i, form := range forms {
				if v, _, err = ctl.Create(cmd.Context(), form); err != nil {
					return fmt.Errorf("fixture #%d: %w", i, err)
				}
				log.Debug().Int("index", i).Str("title", form.Title).Msg("Seeded task")
			}
			if len(forms) == 0 {
				v = ctl.Refresh(cmd.Context())
			}
			log.Info().Int("count", len(forms)).Msg("Seeding complete")
			return c.printView(v)
		},
	}
}

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change stored preferences",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get " + configKeyAPIURL,
			Short: "Print the task API base URL",
			Args:  configKeyArgs(1),
			RunE: func(cmd *cobra.Command, _ []string) error {
				apiURL, err := preference.ResolveAPIURL(cmd.Context(), c.backends.Preferences)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.out, apiURL)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set " + configKeyAPIURL + " <url>",
			Short: "Store the task API base URL",
			Args:  configKeyArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				apiURL, err := preference.NormalizeAPIURL(args[1])
				if err != nil {
					return err
				}
				if err := c.backends.Preferences.Set(cmd.Context(), preference.KeyAPIURL, apiURL); err != nil {
					return fmt.Errorf("failed to store %s: %w", configKeyAPIURL, err)
				}
				fmt.Fprintln(c.out, apiURL)
				return nil
			},
		},
		&cobra.Command{
			Use:   "unset " + configKeyAPIURL,
			Short: "Forget the task API base URL",
			Args:  configKeyArgs(1),
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.backends.Preferences.Delete(cmd.Context(), preference.KeyAPIURL); err != nil {
					return fmt.Errorf("failed to remove %s: %w", configKeyAPIURL, err)
				}
				fmt.Fprintln(c.out, preference.DefaultAPIURL)
				return nil
			},
		},
	)
	return cmd
}

// configKeyArgs wants exactly n args, the first naming a known key.
func configKeyArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return err
		}
		if args[0] != configKeyAPIURL {
			return fmt.Errorf("unknown config key %q, only %q is supported", args[0], configKeyAPIURL)
		}
		return nil
	}
}
