// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"

	"code.gitea.io/githistory/modules/json"
	"code.gitea.io/githistory/routers"
	"code.gitea.io/githistory/services/history"

	"github.com/urfave/cli/v2"
)

// cmdLog represents the available log sub-command.
func cmdLog() *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "Print the commit history page by page",
		ArgsUsage: "[repository]",
		Description: `Runs the same queries as the web server and prints every page,
resuming the session until the history is drained.`,
		Action: runLog,
		Flags: append(repositoryFlags(),
			&cli.StringSliceFlag{
				Name:  "rev",
				Usage: "Start from this reference or commit id instead of the default roots, may be repeated",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print every page as a JSON object on its own line",
			},
		),
	}
}

func runLog(c *cli.Context) error {
	ctx := c.Context
	services, err := routers.InitServices(ctx)
	if err != nil {
		return err
	}

	var page *history.Page
	if revs := c.StringSlice("rev"); len(revs) > 0 {
		page, err = services.History.FromRevisions(ctx, revs)
	} else {
		page, err = services.History.Default(ctx)
	}
	if err != nil {
		return err
	}

	out := c.App.Writer
	for {
		if err := printPage(out, page, c.Bool("json")); err != nil {
			return err
		}
		if page.Session == nil || len(page.Commits) == 0 {
			return nil
		}
		if page, err = services.History.Resume(ctx, *page.Session); err != nil {
			return err
		}
	}
}

func printPage(out io.Writer, page *history.Page, asJSON bool) error {
	if asJSON {
		if len(page.Commits) == 0 {
			return nil
		}
		data, err := json.Marshal(page.Commits)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	}
	for _, c := range page.Commits {
		if _, err := fmt.Fprintf(out, "%s %s\n", c.Hash, c.Message); err != nil {
			return err
		}
	}
	return nil
}
