// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"code.gitea.io/githistory/modules/git"
	"code.gitea.io/githistory/modules/git/gittest"
	"code.gitea.io/githistory/modules/setting"
	"code.gitea.io/githistory/modules/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func makeSettingsOutput() string {
	return fmt.Sprintf("Root=%s\nBranch=%s\nAllRefs=%v\nPageSize=%d\nListen=%s",
		setting.Repository.Root, setting.Repository.Branch, setting.Repository.AllRefs, setting.Repository.PageSize, setting.ListenAddr())
}

func newTestApp(testCmdAction func(ctx *cli.Context) error) *cli.App {
	app := NewMainApp(AppVersion{})
	testCmd := &cli.Command{Name: "test-cmd", Action: testCmdAction, Flags: repositoryFlags()}
	prepareSubcommandWithConfig(testCmd, appGlobalFlags())
	app.Commands = append(app.Commands, testCmd)
	app.DefaultCommand = testCmd.Name
	return app
}

type runResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func runTestApp(app *cli.App, args ...string) (runResult, error) {
	outBuf := new(strings.Builder)
	errBuf := new(strings.Builder)
	app.Writer = outBuf
	app.ErrWriter = errBuf
	exitCode := -1
	defer test.MockVariableValue(&cli.ErrWriter, app.ErrWriter)()
	defer test.MockVariableValue(&cli.OsExiter, func(code int) {
		if exitCode == -1 {
			exitCode = code // save the exit code once and then reset the writer (to simulate the exit)
			app.Writer, app.ErrWriter, cli.ErrWriter = io.Discard, io.Discard, io.Discard
		}
	})()
	err := RunMainApp(app, args...)
	return runResult{outBuf.String(), errBuf.String(), exitCode}, err
}

func TestCliCmd(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "app.ini")
	require.NoError(t, os.WriteFile(conf, []byte(`
[repository]
ROOT = /srv/repo
BRANCH = release
PAGE_SIZE = 7

[server]
HTTP_ADDR = 127.0.0.1
HTTP_PORT = 3000
`), 0o644))
	missing := filepath.Join(dir, "missing.ini")

	cases := []struct {
		cmd string
		exp string
	}{
		{
			cmd: "./githistory -c " + missing + " test-cmd",
			exp: "Root=\nBranch=\nAllRefs=false\nPageSize=50\nListen=0.0.0.0:8084",
		},
		{
			cmd: "./githistory -c " + conf + " test-cmd",
			exp: "Root=/srv/repo\nBranch=release\nAllRefs=false\nPageSize=7\nListen=127.0.0.1:3000",
		},
		{
			cmd: "./githistory test-cmd -c " + conf + " -P 3 -b main -a",
			exp: "Root=/srv/repo\nBranch=main\nAllRefs=true\nPageSize=3\nListen=127.0.0.1:3000",
		},
		{
			cmd: "./githistory test-cmd --config " + conf + " --page-size 0 /tmp/other",
			exp: "Root=/tmp/other\nBranch=release\nAllRefs=false\nPageSize=7\nListen=127.0.0.1:3000",
		},
		{
			cmd: "./githistory test-cmd -c " + conf + " --repo /tmp/flag /tmp/arg",
			exp: "Root=/tmp/flag\nBranch=release\nAllRefs=false\nPageSize=7\nListen=127.0.0.1:3000",
		},
	}

	app := newTestApp(func(ctx *cli.Context) error {
		_, _ = fmt.Fprint(ctx.App.Writer, makeSettingsOutput())
		return nil
	})
	for _, c := range cases {
		t.Run(c.cmd, func(t *testing.T) {
			args := strings.Split(c.cmd, " ") // for test only, "split" is good enough
			r, err := runTestApp(app, args...)
			assert.NoError(t, err, c.cmd)
			assert.Equal(t, c.exp, r.Stdout, c.cmd)
		})
	}
}

func TestCliCmdError(t *testing.T) {
	app := newTestApp(func(ctx *cli.Context) error { return fmt.Errorf("normal error") })
	r, err := runTestApp(app, "./githistory", "test-cmd")
	assert.Error(t, err)
	assert.Equal(t, 1, r.ExitCode)
	assert.Equal(t, "", r.Stdout)
	assert.Equal(t, "Command error: normal error\n", r.Stderr)

	app = newTestApp(func(ctx *cli.Context) error { return cli.Exit("exit error", 2) })
	r, err = runTestApp(app, "./githistory", "test-cmd")
	assert.Error(t, err)
	assert.Equal(t, 2, r.ExitCode)
	assert.Equal(t, "", r.Stdout)
	assert.Equal(t, "exit error\n", r.Stderr)

	app = newTestApp(func(ctx *cli.Context) error { return nil })
	r, err = runTestApp(app, "./githistory", "test-cmd")
	assert.NoError(t, err)
	assert.Equal(t, -1, r.ExitCode) // the cli.OsExiter is not called
	assert.Equal(t, "", r.Stdout)
	assert.Equal(t, "", r.Stderr)
}

func TestLogCommand(t *testing.T) {
	b := gittest.NewBareRepo(t)
	root := b.Commit(gittest.CommitOptions{Message: "root\n", Time: 100})
	hidden := b.Commit(gittest.CommitOptions{Message: "", Time: 150, Parents: []git.ObjectID{root}})
	middle := b.Commit(gittest.CommitOptions{Message: "middle\n", Time: 200, Parents: []git.ObjectID{hidden}})
	tip := b.Commit(gittest.CommitOptions{Message: "tip\n\nbody\n", Time: 300, Parents: []git.ObjectID{middle}})
	b.SetBranch("main", tip)
	b.SetBranch("side", middle)
	b.SetHEAD("main")
	missing := filepath.Join(t.TempDir(), "missing.ini")

	r, err := runTestApp(NewMainApp(AppVersion{}), "./githistory", "log", "-c", missing, "--repo", b.Path(), "-P", "1")
	require.NoError(t, err)
	assert.Equal(t, tip.String()+" tip\n"+middle.String()+" middle\n"+root.String()+" root\n", r.Stdout)

	r, err = runTestApp(NewMainApp(AppVersion{}), "./githistory", "log", "-c", missing, "--rev", "side", "--json", b.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"hash": "`+middle.String()+`", "message": "middle", "parents": ["`+hidden.String()+`"]},
		{"hash": "`+root.String()+`", "message": "root", "parents": []}
	]`, strings.TrimSpace(r.Stdout))

	r, err = runTestApp(NewMainApp(AppVersion{}), "./githistory", "log", "-c", missing, filepath.Join(t.TempDir(), "nothing"))
	assert.Error(t, err)
	assert.Equal(t, 1, r.ExitCode)
	assert.Contains(t, r.Stderr, "Command error:")
}

func TestDocsCommand(t *testing.T) {
	r, err := runTestApp(NewMainApp(AppVersion{}), "./githistory", "docs")
	require.NoError(t, err)
	assert.Contains(t, r.Stdout, "web")
	assert.Contains(t, r.Stdout, "page-size")
}
