// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"code.gitea.io/githistory/modules/log"
	"code.gitea.io/githistory/modules/setting"

	"github.com/urfave/cli/v2"
)

func appGlobalFlags() []cli.Flag {
	return []cli.Flag{
		// shared configuration flags, they are for global and for each sub-command at the same time
		// eg: such command is valid: "./githistory --config /tmp/app.ini web --config /tmp/app.ini", while it's discouraged indeed
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   setting.CustomConf,
			Usage:   "Set custom config file (defaults to 'custom/conf/app.ini', a missing file is ignored)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log debug messages",
		},
	}
}

// repositoryFlags select the repository and the roots of the default query
func repositoryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path of the repository to serve (defaults to the working directory)",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Start the default query from this reference instead of HEAD",
		},
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "Start the default query from every reference",
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Aliases: []string{"x"},
			Usage:   "Leave the references matching this glob out of the --all query, may be repeated",
		},
		&cli.IntFlag{
			Name:    "page-size",
			Aliases: []string{"P"},
			Value:   50,
			Usage:   "Number of commits per page",
		},
	}
}

func prepareSubcommandWithConfig(command *cli.Command, globalFlags []cli.Flag) {
	command.Flags = append(append([]cli.Flag{}, globalFlags...), command.Flags...)
	command.Action = prepareConfig(command.Action)
}

// lookupSet returns the innermost context in which the flag was given explicitly
func lookupSet(c *cli.Context, name string) *cli.Context {
	// from children to parent, check the flags
	for _, curCtx := range c.Lineage() {
		if curCtx.IsSet(name) {
			return curCtx
		}
	}
	return nil
}

// prepareConfig wraps the Action to load the configuration file, the flags override its values
func prepareConfig(action cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		file := setting.CustomConf
		if set := lookupSet(c, "config"); set != nil {
			file = set.String("config")
		}
		cfg, err := setting.InitCfgProvider(file)
		if err != nil {
			return fmt.Errorf("unable to load config %q: %w", file, err)
		}
		setting.LoadCommonSettings(cfg)
		applyFlags(c)
		setting.InitLoggers()
		if set := lookupSet(c, "verbose"); set != nil && set.Bool("verbose") {
			log.SetLevel(log.DEBUG)
		}
		log.Debug("Loaded config from %s", setting.CustomConf)

		if action == nil {
			return cli.ShowCommandHelp(c, c.Command.Name)
		}
		return action(c)
	}
}

// applyFlags copies the explicitly given flags over the configuration
func applyFlags(c *cli.Context) {
	if set := lookupSet(c, "repo"); set != nil {
		setting.Repository.Root = set.String("repo")
	} else if c.Args().Present() {
		setting.Repository.Root = c.Args().First()
	}
	if set := lookupSet(c, "branch"); set != nil {
		setting.Repository.Branch = set.String("branch")
	}
	if set := lookupSet(c, "all"); set != nil {
		setting.Repository.AllRefs = set.Bool("all")
	}
	if set := lookupSet(c, "exclude"); set != nil {
		setting.Repository.ExcludeRefs = set.StringSlice("exclude")
	}
	if set := lookupSet(c, "page-size"); set != nil {
		if size := set.Int("page-size"); size > 0 {
			setting.Repository.PageSize = size
		}
	}
	if set := lookupSet(c, "listen-address"); set != nil {
		setting.HTTPAddr = set.String("listen-address")
	}
	if set := lookupSet(c, "port"); set != nil {
		setting.SetListenPort(set.Int("port"))
	}
}

type AppVersion struct {
	Version string
	Extra   string
}

func NewMainApp(appVer AppVersion) *cli.App {
	app := cli.NewApp()
	app.Name = setting.AppName // must be lower-cased because it appears in the "USAGE" section
	app.Usage = "Paginated commit history of a git repository over HTTP"
	app.Description = `The program contains "web" and other subcommands. If no subcommand is given, it starts the web server by default.`
	app.Version = appVer.Version + appVer.Extra
	app.EnableBashCompletion = true

	// these sub-commands need to use config file
	subCmdWithConfig := []*cli.Command{
		cmdWeb(),
		cmdLog(),
	}

	// these sub-commands do not need the config file
	subCmdStandalone := []*cli.Command{
		cmdDocs(),
	}

	app.DefaultCommand = subCmdWithConfig[0].Name

	globalFlags := appGlobalFlags()
	app.Flags = append(app.Flags, globalFlags...)
	for i := range subCmdWithConfig {
		prepareSubcommandWithConfig(subCmdWithConfig[i], globalFlags)
	}
	app.Commands = append(app.Commands, subCmdWithConfig...)
	app.Commands = append(app.Commands, subCmdStandalone...)
	return app
}

func RunMainApp(app *cli.App, args ...string) error {
	ctx, cancel := installSignals()
	defer cancel()
	err := app.RunContext(ctx, args)
	if err == nil {
		return nil
	}
	if strings.HasPrefix(err.Error(), "flag provided but not defined:") {
		// the cli package should already have output the error message, so just exit
		cli.OsExiter(1)
		return err
	}
	_, _ = fmt.Fprintf(app.ErrWriter, "Command error: %v\n", err)
	cli.OsExiter(1)
	return err
}

func installSignals() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// install notify
		signalChannel := make(chan os.Signal, 1)

		signal.Notify(
			signalChannel,
			syscall.SIGINT,
			syscall.SIGTERM,
		)
		select {
		case <-signalChannel:
		case <-ctx.Done():
		}
		cancel()
		signal.Reset()
	}()

	return ctx, cancel
}
