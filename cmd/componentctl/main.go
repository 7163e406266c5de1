// Command componentctl inspects and edits service components from a terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/jacentio/components/store"
)

var (
	app        *cli.App
	configPath string
	timeout    time.Duration
	verbose    bool
)

func init() {
	app = cli.NewApp()
	app.Name = "componentctl"
	app.Usage = "inspect and edit service components stored in DynamoDB"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "c",
			Value:       "",
			Destination: &configPath,
			Usage:       "Path to a YAML configuration file (default: environment)",
		},
		cli.DurationFlag{
			Name:        "timeout",
			Value:       10 * time.Second,
			Destination: &timeout,
			Usage:       "Deadline for each DynamoDB request",
		},
		cli.BoolFlag{
			Name:        "v",
			Destination: &verbose,
			Usage:       "Log failed requests to stderr",
		},
	}
}

func main() {
	app.Commands = []cli.Command{
		{
			Name:   "list",
			Usage:  "list all components",
			Action: withStore(list),
		},
		{
			Name:      "get",
			Usage:     "show one component",
			ArgsUsage: "ID",
			Action:    withStore(get),
		},
		{
			Name:      "update",
			Usage:     "update the given fields of a component",
			ArgsUsage: "ID",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "name", Usage: "display name"},
				cli.StringFlag{Name: "description", Usage: "free-text description"},
				cli.StringFlag{Name: "status", Usage: "status tag"},
				cli.IntFlag{Name: "order", Usage: "sort rank"},
			},
			Action: withStore(update),
		},
		{
			Name:      "status",
			Usage:     "set the status of a component",
			ArgsUsage: "ID STATUS",
			Action:    withStore(setStatus),
		},
		{
			Name:      "delete",
			Usage:     "delete a component",
			ArgsUsage: "ID",
			Action:    withStore(remove),
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (store.Config, error) {
	if configPath != "" {
		return store.ConfigFromYaml(configPath)
	}
	return store.ConfigFromEnvironment()
}

// withStore builds the store and a request deadline before running action.
func withStore(action func(ctx context.Context, s *store.Store, c *cli.Context) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s, err := store.NewFromConfig(ctx, cfg)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		if verbose {
			s.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}

		if err := action(ctx, s, c); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	}
}

func list(ctx context.Context, s *store.Store, _ *cli.Context) error {
	components, err := s.List(ctx)
	if err != nil {
		return err
	}
	return printJSON(components)
}

func get(ctx context.Context, s *store.Store, c *cli.Context) error {
	id, err := requireArgs(c, 1)
	if err != nil {
		return err
	}
	component, err := s.Get(ctx, id[0])
	if err != nil {
		return err
	}
	return printJSON(component)
}

func update(ctx context.Context, s *store.Store, c *cli.Context) error {
	id, err := requireArgs(c, 1)
	if err != nil {
		return err
	}
	component, err := s.Update(ctx, id[0], fieldsFromFlags(c))
	if err != nil {
		return err
	}
	return printJSON(component)
}

func setStatus(ctx context.Context, s *store.Store, c *cli.Context) error {
	args, err := requireArgs(c, 2)
	if err != nil {
		return err
	}
	component, err := s.UpdateStatus(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return printJSON(component)
}

func remove(ctx context.Context, s *store.Store, c *cli.Context) error {
	id, err := requireArgs(c, 1)
	if err != nil {
		return err
	}
	return s.Delete(ctx, id[0])
}

// fieldsFromFlags maps explicitly set flags to a partial update.
func fieldsFromFlags(c *cli.Context) store.Fields {
	var f store.Fields
	if c.IsSet("name") {
		v := c.String("name")
		f.Name = &v
	}
	if c.IsSet("description") {
		v := c.String("description")
		f.Description = &v
	}
	if c.IsSet("status") {
		v := c.String("status")
		f.Status = &v
	}
	if c.IsSet("order") {
		v := c.Int("order")
		f.Order = &v
	}
	return f
}

func requireArgs(c *cli.Context, n int) ([]string, error) {
	if c.NArg() != n {
		return nil, fmt.Errorf("expected %d argument(s): %s", n, c.Command.ArgsUsage)
	}
	return c.Args()[:n], nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
