// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testutils holds fixtures shared by package tests: a logging context and
// small on-disk project trees.
package testutils

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// 🧪 Context returns a context carrying a zerolog logger that writes to the test log
func Context(t testing.TB) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

// 📝 WriteTree creates files (slash path -> content) under root. A path ending in "/"
// creates an empty directory.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		if path[len(path)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0o755), "creating %s", path)
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755), "creating parent of %s", path)
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644), "writing %s", path)
	}
}

// 🔍 ListTree returns every path under root, slash separated and sorted, including "."
func ListTree(t testing.TB, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err, "listing %s", root)
	sort.Strings(out)
	return out
}

// 📦 NewProject creates <tmp>/<name>: a small Swift package with the build artifacts a
// real checkout accumulates (.build, Derived, DerivedData)
func NewProject(t testing.TB, name string) string {
	t.Helper()
	project := filepath.Join(t.TempDir(), name)
	WriteTree(t, project, map[string]string{
		"Package.swift":                 "// swift-tools-version:5.9\n",
		"Sources/App/main.swift":        "print(\"hello\")\n",
		"Sources/App/Util/helper.swift": "let x = 1\n",
		"Tests/AppTests/AppTests.swift": "import XCTest\n",
		".build/debug/App":              "binary",
		"Derived/cache.bin":             "cache",
		"DerivedData/Logs/build.log":    "log",
	})
	return project
}
