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

package container

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/snyk/snyk-ide-core/internal/types"
)

var defaultIgnores = []string{".git/", ".svn/", ".hg/", "node_modules/", ".idea/"}

// KubernetesImage is a container image referenced by workload manifests.
type KubernetesImage struct {
	Image string
	Files []types.FilePath
}

// DiscoverImages collects the images referenced by `image:` fields of Kubernetes manifests below roots,
// skipping paths ignored by the root's .gitignore. Images are sorted by name.
func DiscoverImages(logger zerolog.Logger, roots ...types.FilePath) []KubernetesImage {
	filesByImage := map[string][]types.FilePath{}
	for _, root := range roots {
		checker := ignoreChecker(root)
		err := filepath.WalkDir(string(root), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable path")
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			rel, relErr := filepath.Rel(string(root), path)
			if relErr != nil || rel == "." {
				return nil
			}
			rel = filepath.ToSlash(rel)
			if d.IsDir() {
				if checker.MatchesPath(rel + "/") {
					return filepath.SkipDir
				}
				return nil
			}
			if !isYaml(path) || checker.MatchesPath(rel) {
				return nil
			}
			images, parseErr := imagesInManifest(path)
			if parseErr != nil {
				logger.Debug().Err(parseErr).Str("path", path).Msg("not a parsable manifest")
			}
			for _, image := range images {
				file := types.FilePath(path)
				if !slices.Contains(filesByImage[image], file) {
					filesByImage[image] = append(filesByImage[image], file)
				}
			}
			return nil
		})
		if err != nil {
			logger.Err(err).Str("root", string(root)).Msg("couldn't walk content root")
		}
	}

	names := maps.Keys(filesByImage)
	slices.Sort(names)
	result := make([]KubernetesImage, 0, len(names))
	for _, name := range names {
		result = append(result, KubernetesImage{Image: name, Files: filesByImage[name]})
	}
	return result
}

func ignoreChecker(root types.FilePath) *ignore.GitIgnore {
	lines := append([]string{}, defaultIgnores...)
	content, err := os.ReadFile(filepath.Join(string(root), ".gitignore"))
	if err == nil {
		lines = append(lines, strings.Split(string(content), "\n")...)
	}
	return ignore.CompileIgnoreLines(lines...)
}

func isYaml(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// imagesInManifest returns the images of every Kubernetes document in a (multi-document) yaml file.
func imagesInManifest(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't read manifest")
	}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	var images []string
	for {
		var document map[string]any
		err = decoder.Decode(&document)
		if errors.Is(err, io.EOF) {
			return images, nil
		}
		if err != nil {
			return images, errors.Wrap(err, "invalid yaml")
		}
		if !isKubernetesDocument(document) {
			continue
		}
		collectImages(document, &images)
	}
}

func isKubernetesDocument(document map[string]any) bool {
	_, hasKind := document["kind"].(string)
	_, hasApiVersion := document["apiVersion"].(string)
	return hasKind && hasApiVersion
}

func collectImages(node any, images *[]string) {
	switch value := node.(type) {
	case map[string]any:
		for key, child := range value {
			if image, ok := child.(string); ok && key == "image" && image != "" {
				if !slices.Contains(*images, image) {
					*images = append(*images, image)
				}
				continue
			}
			collectImages(child, images)
		}
	case []any:
		for _, child := range value {
			collectImages(child, images)
		}
	}
}
