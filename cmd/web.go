// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2016 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"code.gitea.io/githistory/modules/log"
	"code.gitea.io/githistory/modules/setting"
	"code.gitea.io/githistory/routers"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// cmdWeb represents the available web sub-command.
func cmdWeb() *cli.Command {
	return &cli.Command{
		Name:      "web",
		Usage:     "Start the history web server",
		ArgsUsage: "[repository]",
		Description: `The web server serves pages of the commit history of one repository,
the diffs between its commits and their metadata.`,
		Action: runWeb,
		Flags: append(repositoryFlags(),
			&cli.StringFlag{
				Name:    "listen-address",
				Aliases: []string{"l"},
				Value:   "0.0.0.0",
				Usage:   "Address to listen on",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8084,
				Usage:   "Temporary port number to prevent conflict",
			},
		),
	}
}

func runWeb(c *cli.Context) error {
	ctx := c.Context
	log.Info("Starting %s on PID: %d", setting.AppName, os.Getpid())
	log.Info("App version: %s", c.App.Version)

	services, err := routers.InitServices(ctx)
	if err != nil {
		log.Error("Failed to initialize the services: %v", err)
		return err
	}
	return serve(ctx, setting.ListenAddr(), routers.NormalRoutes(services))
}

// serve runs the server until ctx is done, then shuts it down within the hammer time
func serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: setting.ReadHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Listen: http://%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Failed to start server: %v", err)
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down the server at %s", addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), setting.GracefulHammerTime)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn("Hammering the server after %v: %v", setting.GracefulHammerTime, err)
			return server.Close()
		}
		return nil
	})
	err := g.Wait()
	log.Info("PID: %d %s shutdown", os.Getpid(), setting.AppName)
	return err
}
