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

package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	sglsp "github.com/sourcegraph/go-lsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/snyk-ide-core/internal/types"
	"github.com/snyk/snyk-ide-core/internal/uri"
)

func setupCodeFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	fileName := filepath.Join(dir, "testFile")
	err := os.WriteFile(fileName, []byte(content), 0660)
	if err != nil {
		t.Fatal(err, "Couldn't create test file")
	}
	return fileName
}

func textEdit(startLine, startChar, endLine, endChar int, text string) sglsp.TextEdit {
	return sglsp.TextEdit{
		Range: sglsp.Range{
			Start: sglsp.Position{Line: startLine, Character: startChar},
			End:   sglsp.Position{Line: endLine, Character: endChar},
		},
		NewText: text,
	}
}

func editFor(changes map[string][]sglsp.TextEdit) *sglsp.WorkspaceEdit {
	edit := &sglsp.WorkspaceEdit{Changes: map[string][]sglsp.TextEdit{}}
	for path, edits := range changes {
		edit.Changes[string(uri.PathToUri(types.FilePath(path)))] = edits
	}
	return edit
}

func newFilesystem(t *testing.T) *Filesystem {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return New(&logger)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestApplyEdit(t *testing.T) {
	t.Run("replaces ranges of several lines", func(t *testing.T) {
		fileName := setupCodeFile(t, "Line1\nLine2\nLine3\nLine4")
		f := newFilesystem(t)

		err := f.ApplyEdit(editFor(map[string][]sglsp.TextEdit{
			fileName: {textEdit(0, 4, 0, 5, "One"), textEdit(2, 0, 3, 0, "")},
		}))

		require.NoError(t, err)
		assert.Equal(t, "LineOne\nLine2\nLine4", readFile(t, fileName))
	})
	t.Run("inserts at identical start and end", func(t *testing.T) {
		fileName := setupCodeFile(t, "require (\n)\n")
		f := newFilesystem(t)

		err := f.ApplyEdit(editFor(map[string][]sglsp.TextEdit{
			fileName: {textEdit(1, 0, 1, 0, "\tgithub.com/pkg/errors v0.9.1\n")},
		}))

		require.NoError(t, err)
		assert.Equal(t, "require (\n\tgithub.com/pkg/errors v0.9.1\n)\n", readFile(t, fileName))
	})
	t.Run("counts characters in utf-16 code units", func(t *testing.T) {
		fileName := setupCodeFile(t, "a😀b\n")
		f := newFilesystem(t)

		err := f.ApplyEdit(editFor(map[string][]sglsp.TextEdit{
			fileName: {textEdit(0, 3, 0, 4, "c")},
		}))

		require.NoError(t, err)
		assert.Equal(t, "a😀c\n", readFile(t, fileName))
	})
	t.Run("character beyond line end means end of line", func(t *testing.T) {
		fileName := setupCodeFile(t, "short\r\nnext")
		f := newFilesystem(t)

		err := f.ApplyEdit(editFor(map[string][]sglsp.TextEdit{
			fileName: {textEdit(0, 100, 0, 100, "er")},
		}))

		require.NoError(t, err)
		assert.Equal(t, "shorter\r\nnext", readFile(t, fileName))
	})
	t.Run("overlapping edits change nothing", func(t *testing.T) {
		fileName := setupCodeFile(t, "Line1\nLine2")
		f := newFilesystem(t)

		err := f.ApplyEdit(editFor(map[string][]sglsp.TextEdit{
			fileName: {textEdit(0, 0, 0, 4, "a"), textEdit(0, 2, 0, 5, "b")},
		}))

		assert.Error(t, err)
		assert.Equal(t, "Line1\nLine2", readFile(t, fileName))
	})
	t.Run("invalid edit in one file leaves all files unchanged", func(t *testing.T) {
		valid := setupCodeFile(t, "Line1")
		invalid := setupCodeFile(t, "Line1")
		f := newFilesystem(t)

		err := f.ApplyEdit(editFor(map[string][]sglsp.TextEdit{
			valid:   {textEdit(0, 0, 0, 5, "changed")},
			invalid: {textEdit(5, 0, 5, 1, "changed")},
		}))

		assert.Error(t, err)
		assert.Equal(t, "Line1", readFile(t, valid))
		assert.Equal(t, "Line1", readFile(t, invalid))
	})
	t.Run("missing file is an error", func(t *testing.T) {
		f := newFilesystem(t)

		err := f.ApplyEdit(editFor(map[string][]sglsp.TextEdit{
			filepath.Join(t.TempDir(), "missing"): {textEdit(0, 0, 0, 0, "x")},
		}))

		assert.Error(t, err)
	})
	t.Run("empty edit is a no-op", func(t *testing.T) {
		f := newFilesystem(t)

		assert.NoError(t, f.ApplyEdit(nil))
		assert.NoError(t, f.ApplyEdit(&sglsp.WorkspaceEdit{}))
	})
}

func Test_utf16Len(t *testing.T) {
	assert.Equal(t, 1, utf16Len('a'))
	assert.Equal(t, 1, utf16Len('é'))
	assert.Equal(t, 1, utf16Len('\uFFFF'))
	assert.Equal(t, 2, utf16Len('😀'))
	assert.Equal(t, 2, utf16Len('\U0010FFFF'))
	assert.Equal(t, 1, utf16Len(-1))
	assert.Equal(t, 1, utf16Len(0x110000))
}

func Test_ApplyEdit_afterSeveralNonBmpRunes_replacesTheRightCharacter(t *testing.T) {
	fileName := setupCodeFile(t, "😀中😀x\n")
	f := newFilesystem(t)

	err := f.ApplyEdit(editFor(map[string][]sglsp.TextEdit{
		fileName: {textEdit(0, 5, 0, 6, "y")},
	}))

	require.NoError(t, err)
	assert.Equal(t, "😀中😀y\n", readFile(t, fileName))
}
