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

package client

import (
	"context"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"

	"github.com/snyk/snyk-ide-core/internal/lsp"
)

func showMessageRequestHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(ctx context.Context, params lsp.ShowMessageRequestParams) (lsp.MessageActionItem, error) {
		return cl.showMessageRequest(ctx, params), nil
	})
}

// showMessageRequest presents params and waits for the user's choice. Only one request is presented at a time;
// requests that cannot be presented or answered within the timeout resolve to an empty title.
func (cl *Client) showMessageRequest(ctx context.Context, params lsp.ShowMessageRequestParams) lsp.MessageActionItem {
	logger := cl.logger.With().Str("method", "showMessageRequest").Logger()
	if cl.messageRequester == nil {
		return lsp.MessageActionItem{}
	}

	timer := time.NewTimer(cl.messageRequestTimeout)
	defer timer.Stop()

	select {
	case cl.messageRequestSlot <- struct{}{}:
	case <-timer.C:
		logger.Debug().Msg("another message request is outstanding, answering with empty title")
		return lsp.MessageActionItem{}
	case <-ctx.Done():
		return lsp.MessageActionItem{}
	}
	defer func() { <-cl.messageRequestSlot }()

	answer := make(chan string, 1)
	respond := func(title string) {
		select {
		case answer <- title:
		default:
		}
	}
	dismiss := cl.messageRequester.ShowMessageRequest(cl.workspace.ActiveProject(), params, respond)
	if dismiss == nil {
		dismiss = func() {}
	}

	select {
	case title := <-answer:
		return lsp.MessageActionItem{Title: title}
	case <-timer.C:
		logger.Debug().Str("message", params.Message).Msg("no answer in time")
	case <-ctx.Done():
	}
	dismiss()
	return lsp.MessageActionItem{}
}
