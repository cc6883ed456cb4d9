/*
 * © 2024 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package languageserver

import (
	"context"
	"os"
	"os/exec"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/pkg/errors"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/infrastructure/cli"
)

// Process is a language server started as a child process and the connection to it.
type Process struct {
	*Connection
	cmd     *exec.Cmd
	exited  chan struct{}
	exitErr error
}

func command(c *config.Config) []string {
	return []string{c.CliPath(), "language-server", "-l", c.LogLevel()}
}

// MessageHandler handles the requests and notifications the server sends.
type MessageHandler interface {
	ClientOptions() *jrpc2.ClientOptions
	// Ordered wraps the channel server messages are read from.
	Ordered(ch channel.Channel) channel.Channel
}

// Launch starts `snyk language-server` and connects to it over its standard streams. Server messages are
// dispatched to h.
func Launch(ctx context.Context, c *config.Config, h MessageHandler) (*Process, error) {
	logger := c.Logger().With().Str("method", "Launch").Logger()
	if !c.CliInstalled() {
		return nil, errors.Errorf("snyk cli not found at %q", c.CliPath())
	}

	args := command(c)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = cli.AppendCliEnvironmentVariables(c, os.Environ(), true)
	serverLog := c.Logger().With().Str("source", "language-server").Logger()
	cmd.Stderr = serverLog

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "could not open stdin of language server")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "could not open stdout of language server")
	}
	if err = cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "could not start language server")
	}
	logger.Info().Strs("command", args).Int("pid", cmd.Process.Pid).Msg("language server started")

	// stdout must not be read anymore when the process is reaped
	readerStopped := make(chan struct{})
	opts := jrpc2.ClientOptions{}
	if o := h.ClientOptions(); o != nil {
		opts = *o
	}
	onStop := opts.OnStop
	opts.OnStop = func(cl *jrpc2.Client, err error) {
		if onStop != nil {
			onStop(cl, err)
		}
		close(readerStopped)
	}

	rpc := jrpc2.NewClient(h.Ordered(channel.Header("")(stdout, stdin)), &opts)
	p := &Process{
		Connection: NewConnection(c, rpc),
		cmd:        cmd,
		exited:     make(chan struct{}),
	}
	go func() {
		<-readerStopped
		p.exitErr = cmd.Wait()
		p.shutdown.Set(true)
		p.initialized.Set(false)
		close(p.exited)
	}()
	return p, nil
}

func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Exited is closed when the server process has ended.
func (p *Process) Exited() <-chan struct{} {
	return p.exited
}

// Err returns how the process ended. Only valid once Exited is closed.
func (p *Process) Err() error {
	return p.exitErr
}
