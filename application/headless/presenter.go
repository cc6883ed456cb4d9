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

package headless

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/internal/lsp"
)

// ConsolePresenter asks the questions of the language server on a console. Answers are read line by line,
// either the number or the title of an action.
type ConsolePresenter struct {
	logger  *zerolog.Logger
	out     io.Writer
	answers chan string

	outMutex sync.Mutex
}

// NewConsolePresenter reads answers from in until it is exhausted. A nil in never answers, so every
// question runs into the timeout of the caller.
func NewConsolePresenter(logger *zerolog.Logger, out io.Writer, in io.Reader) *ConsolePresenter {
	p := &ConsolePresenter{logger: logger, out: out, answers: make(chan string)}
	if in != nil {
		go p.readAnswers(in)
	}
	return p
}

func (p *ConsolePresenter) readAnswers(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		p.answers <- strings.TrimSpace(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		p.logger.Debug().Err(err).Msg("stopped reading answers")
	}
}

func (p *ConsolePresenter) ShowMessageRequest(
	project *workspace.Project,
	params lsp.ShowMessageRequestParams,
	respond func(title string),
) (dismiss func()) {
	p.print(project, params)

	dismissed := make(chan struct{})
	var once sync.Once
	go func() {
		select {
		case answer := <-p.answers:
			respond(actionTitle(params.Actions, answer))
		case <-dismissed:
		}
	}()
	return func() {
		once.Do(func() {
			close(dismissed)
			p.println("(no answer, question dismissed)")
		})
	}
}

func (p *ConsolePresenter) print(project *workspace.Project, params lsp.ShowMessageRequestParams) {
	var sb strings.Builder
	if project != nil {
		sb.WriteString("[" + project.Name() + "] ")
	}
	sb.WriteString(params.Message)
	for i, action := range params.Actions {
		sb.WriteString(fmt.Sprintf("\n  %d) %s", i+1, action.Title))
	}
	p.println(sb.String())
}

func (p *ConsolePresenter) println(s string) {
	p.outMutex.Lock()
	defer p.outMutex.Unlock()
	_, _ = fmt.Fprintln(p.out, s)
}

// actionTitle maps an answer to the title of the chosen action, or to "" if it matches none.
func actionTitle(actions []lsp.MessageActionItem, answer string) string {
	if i, err := strconv.Atoi(answer); err == nil && i >= 1 && i <= len(actions) {
		return actions[i-1].Title
	}
	for _, action := range actions {
		if strings.EqualFold(action.Title, answer) {
			return action.Title
		}
	}
	return ""
}
