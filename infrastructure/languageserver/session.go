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
	"sync"

	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/internal/lsp"
)

// Session is the language server connection as seen by the rest of the client. The connection is attached
// once the server has been launched; until then every request fails with ErrNotInitialized.
type Session struct {
	mutex      sync.RWMutex
	connection *Connection
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Attach(connection *Connection) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.connection = connection
}

// Detach removes the connection and returns it, or nil if none was attached.
func (s *Session) Detach() *Connection {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	connection := s.connection
	s.connection = nil
	return connection
}

func (s *Session) current() *Connection {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.connection
}

func (s *Session) SendScanCommand(ctx context.Context, project *workspace.Project) error {
	connection := s.current()
	if connection == nil {
		return ErrNotInitialized
	}
	return connection.SendScanCommand(ctx, project)
}

func (s *Session) UpdateConfiguration(ctx context.Context) error {
	connection := s.current()
	if connection == nil {
		return ErrNotInitialized
	}
	return connection.UpdateConfiguration(ctx)
}

func (s *Session) AddProject(ctx context.Context, project *workspace.Project) error {
	connection := s.current()
	if connection == nil {
		return ErrNotInitialized
	}
	return connection.AddProject(ctx, project)
}

func (s *Session) RemoveProject(ctx context.Context, project *workspace.Project) error {
	connection := s.current()
	if connection == nil {
		return ErrNotInitialized
	}
	return connection.RemoveProject(ctx, project)
}

func (s *Session) CancelProgress(token lsp.ProgressToken) {
	if connection := s.current(); connection != nil {
		connection.CancelProgress(token)
	}
}
