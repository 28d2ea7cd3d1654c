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

package stage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📂 copyTree recursively copies src to dst. dst must not exist yet. Symlinks are
// recreated, not followed; modes are kept; special files are skipped. A partial copy
// is removed on failure.
func copyTree(ctx context.Context, src, dst string) error {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("reading project directory: %w", err)
	}
	if !info.IsDir() {
		return errors.Errorf("project path %s is not a directory", src)
	}
	if src, err = filepath.EvalSymlinks(src); err != nil {
		return errors.Errorf("resolving project directory: %w", err)
	}

	if _, err := os.Lstat(dst); err == nil {
		return errors.Errorf("destination %s already exists", dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errors.Errorf("checking destination: %w", err)
	}

	// only the staged directory itself is created here, never its parents
	if _, err := os.Stat(filepath.Dir(dst)); err != nil {
		return errors.Errorf("checking destination parent: %w", err)
	}

	absDst, err := filepath.Abs(dst)
	if err != nil {
		return errors.Errorf("getting absolute destination path: %w", err)
	}
	// compared against resolved project paths below
	if parent, err := filepath.EvalSymlinks(filepath.Dir(absDst)); err == nil {
		absDst = filepath.Join(parent, filepath.Base(absDst))
	}

	err = cp.Copy(src, dst, cp.Options{
		OnSymlink:         func(string) cp.SymlinkAction { return cp.Shallow },
		PermissionControl: cp.PerservePermission,
		Skip: func(fi os.FileInfo, path, _ string) (bool, error) {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			// the destination may live under the project when an override root points inside it
			if abs, err := filepath.Abs(path); err == nil && abs == absDst {
				return true, nil
			}
			if !fi.IsDir() && !fi.Mode().IsRegular() && fi.Mode()&fs.ModeSymlink == 0 {
				logger.Debug().Str("path", path).Str("type", fi.Mode().Type().String()).Msg("skipping special file")
				return true, nil
			}
			return false, nil
		},
	})
	if err != nil {
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			logger.Warn().Err(rmErr).Str("path", dst).Msg("removing partial copy")
		}
		return errors.Errorf("copying %s: %w", src, err)
	}

	return nil
}
