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

// Package filesystem applies workspace edits to files on disk.
package filesystem

import (
	"bytes"
	"os"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	sglsp "github.com/sourcegraph/go-lsp"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/snyk/snyk-ide-core/internal/uri"
)

type Filesystem struct {
	logger *zerolog.Logger
}

func New(logger *zerolog.Logger) *Filesystem {
	l := logger.With().Str("component", "filesystem.Filesystem").Logger()
	return &Filesystem{logger: &l}
}

type fileChange struct {
	path     string
	original []byte
	updated  []byte
	mode     os.FileMode
}

// ApplyEdit applies the text edits of all files. The new contents of every file are computed before
// anything is written; if writing one file fails, the files written so far are restored.
func (f *Filesystem) ApplyEdit(edit *sglsp.WorkspaceEdit) error {
	if edit == nil || len(edit.Changes) == 0 {
		return nil
	}
	logger := f.logger.With().Str("method", "ApplyEdit").Logger()

	documentURIs := maps.Keys(edit.Changes)
	slices.Sort(documentURIs)

	changes := make([]fileChange, 0, len(documentURIs))
	for _, documentURI := range documentURIs {
		path, err := uri.PathFromUri(sglsp.DocumentURI(documentURI))
		if err != nil {
			return err
		}
		change, err := computeChange(string(path), edit.Changes[documentURI])
		if err != nil {
			return err
		}
		changes = append(changes, change)
	}

	for i, change := range changes {
		if err := writeFile(change.path, change.updated, change.mode); err != nil {
			for _, written := range changes[:i] {
				if restoreErr := writeFile(written.path, written.original, written.mode); restoreErr != nil {
					logger.Error().Err(restoreErr).Str("path", written.path).Msg("could not restore file")
				}
			}
			return err
		}
	}
	logger.Debug().Int("files", len(changes)).Msg("edit applied")
	return nil
}

func computeChange(path string, edits []sglsp.TextEdit) (fileChange, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileChange{}, errors.Wrapf(err, "cannot edit %s", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fileChange{}, errors.Wrapf(err, "cannot read %s", path)
	}
	updated, err := applyTextEdits(content, edits)
	if err != nil {
		return fileChange{}, errors.Wrapf(err, "cannot edit %s", path)
	}
	return fileChange{path: path, original: content, updated: updated, mode: info.Mode().Perm()}, nil
}

type span struct {
	start int
	end   int
	text  string
}

// applyTextEdits applies edits whose ranges refer to the original content. Ranges must not overlap.
func applyTextEdits(content []byte, edits []sglsp.TextEdit) ([]byte, error) {
	lines := lineStarts(content)
	spans := make([]span, 0, len(edits))
	for _, edit := range edits {
		start, err := offset(content, lines, edit.Range.Start)
		if err != nil {
			return nil, err
		}
		end, err := offset(content, lines, edit.Range.End)
		if err != nil {
			return nil, err
		}
		if end < start {
			return nil, errors.Errorf("range end %v before start %v", edit.Range.End, edit.Range.Start)
		}
		spans = append(spans, span{start: start, end: end, text: edit.NewText})
	}
	slices.SortStableFunc(spans, func(a, b span) int { return a.start - b.start })

	var result bytes.Buffer
	position := 0
	for _, s := range spans {
		if s.start < position {
			return nil, errors.New("overlapping text edits")
		}
		result.Write(content[position:s.start])
		result.WriteString(s.text)
		position = s.end
	}
	result.Write(content[position:])
	return result.Bytes(), nil
}

func lineStarts(content []byte) []int {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offset converts a position to a byte offset. Characters are UTF-16 code units; a character beyond the
// end of the line means the end of the line.
func offset(content []byte, lines []int, pos sglsp.Position) (int, error) {
	if pos.Line < 0 || pos.Line >= len(lines) || pos.Character < 0 {
		return 0, errors.Errorf("position %d:%d outside of document", pos.Line, pos.Character)
	}
	lineEnd := len(content)
	if pos.Line+1 < len(lines) {
		lineEnd = lines[pos.Line+1] - 1
		if lineEnd > lines[pos.Line] && content[lineEnd-1] == '\r' {
			lineEnd--
		}
	}

	i := lines[pos.Line]
	units := 0
	for i < lineEnd && units < pos.Character {
		r, size := utf8.DecodeRune(content[i:])
		units += utf16Len(r)
		i += size
	}
	return i, nil
}

// utf16Len is the number of UTF-16 code units encoding r. Invalid runes count as one.
func utf16Len(r rune) int {
	if r >= 0x10000 && r <= unicode.MaxRune {
		return 2
	}
	return 1
}

func writeFile(path string, content []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "cannot write %s", path)
	}
	tmpName := tmp.Name()
	_, err = tmp.Write(content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, mode)
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "cannot write %s", path)
	}
	return nil
}
