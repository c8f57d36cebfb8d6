/*
	Copyright 2025 The benchviz Authors
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package sink persists rendered artifacts to the filesystem.  Renderers
// never touch the filesystem themselves; they hand finished bytes to a sink,
// which guarantees the parent directory exists before writing.
package sink

import (
	"os"
	"path/filepath"
	"strings"
)

// Format is an output encoding implied by a file suffix.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// FormatFor returns the encoding implied by path's suffix.  Anything other
// than ".png" renders as SVG.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return PNG
	}
	return SVG
}

// Write writes data to path, creating parent directories as needed.
// Failures are surfaced unchanged to the caller.
func Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
