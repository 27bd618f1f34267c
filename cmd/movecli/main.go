// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/moveclient/config"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
)

var cmdMain = &cobra.Command{
	Use:   "movecli",
	Short: "Build, submit, and track Move entry function transactions",
	Run:   printUsageAndExit1,
	PersistentPreRun: func(*cobra.Command, []string) {
		if flagMain.Debug {
			errors.EnableLocationTracking()
		}
	},
}

var flagMain struct {
	Config    string
	Node      string
	Key       string
	LogLevel  string
	LogFormat string
	JSON      bool
	Debug     bool
}

func init() {
	defaultConfig := ""
	if home, err := os.UserHomeDir(); err == nil {
		defaultConfig = filepath.Join(home, ".moveclient", config.DefaultFile)
	}

	cmdMain.SetOut(os.Stdout)

	flags := cmdMain.PersistentFlags()
	flags.StringVarP(&flagMain.Config, "config", "c", defaultConfig, "Configuration file (ignored if it does not exist)")
	flags.StringVarP(&flagMain.Node, "node", "s", "", "Node REST API URL, overriding the configuration")
	flags.StringVarP(&flagMain.Key, "key", "k", "", "Name of the configured key to sign with (defaults to $MOVECLIENT_PRIVATE_KEY)")
	flags.StringVar(&flagMain.LogLevel, "log-level", "", "Log levels, for example error;client=debug")
	flags.StringVar(&flagMain.LogFormat, "log-format", "", "Log format: text or json")
	flags.BoolVarP(&flagMain.JSON, "json", "j", false, "Print output as JSON")
	flags.BoolVar(&flagMain.Debug, "debug", false, "Print errors with the call sites that produced them")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, cmdMain)
	cancel()
	os.Exit(code)
}

// exitCode is raised by exit. It unwinds the running command so that its
// deferred cleanup, such as closing the journal, runs before the process
// exits.
type exitCode int

func exit(code int) { panic(exitCode(code)) }

// execute runs the command and returns the process exit status.
func execute(ctx context.Context, cmd *cobra.Command) (code int) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		c, ok := r.(exitCode)
		if !ok {
			panic(r)
		}
		code = int(c)
	}()

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		return 1
	}
	return 0
}

func printUsageAndExit1(cmd *cobra.Command, args []string) {
	_ = cmd.Usage()
	exit(1)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	exit(1)
}

func check(err error) {
	if err != nil {
		fatalf("%v", formatError(err))
	}
}

func checkf(err error, format string, otherArgs ...interface{}) {
	if err != nil {
		fatalf(format+": %v", append(otherArgs, formatError(err))...)
	}
}

// formatError includes call sites when --debug is set.
func formatError(err error) string {
	if flagMain.Debug {
		return fmt.Sprintf("%+v", err)
	}
	return err.Error()
}
