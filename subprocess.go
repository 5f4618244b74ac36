// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package qmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
	"unicode/utf8"
)

// runExternalFormatter runs the formatter described by fc against body,
// returning its formatted output. The body is delivered over stdin or
// through a temporary file per fc.Stdin. Any spawn failure, non-zero
// exit, timeout, or invalid-UTF-8 output is reported as an error; the
// caller always has the original body to fall back to.
func runExternalFormatter(fc FormatterConfig, timeout time.Duration, body string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	args := append([]string(nil), fc.Args...)
	if fc.Stdin {
		cmd := exec.CommandContext(ctx, fc.Cmd, args...)
		cmd.Stdin = bytes.NewReader([]byte(body))
		return runAndCollect(ctx, cmd, fc.Cmd)
	}

	f, err := os.CreateTemp("", "qmdfmt-*")
	if err != nil {
		return "", fmt.Errorf("qmd: external formatter %s: create temp file: %w", fc.Cmd, err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		return "", fmt.Errorf("qmd: external formatter %s: write temp file: %w", fc.Cmd, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("qmd: external formatter %s: close temp file: %w", fc.Cmd, err)
	}
	args = append(args, f.Name())
	cmd := exec.CommandContext(ctx, fc.Cmd, args...)
	out, err := runAndCollect(ctx, cmd, fc.Cmd)
	if err != nil {
		return "", err
	}
	if out == "" {
		formatted, err := os.ReadFile(f.Name())
		if err != nil {
			return "", fmt.Errorf("qmd: external formatter %s: read temp file: %w", fc.Cmd, err)
		}
		return string(formatted), nil
	}
	return out, nil
}

func runAndCollect(ctx context.Context, cmd *exec.Cmd, name string) (string, error) {
	out, err := cmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("qmd: external formatter %s: timed out: %w", name, ctx.Err())
	}
	if err != nil {
		return "", fmt.Errorf("qmd: external formatter %s: %w", name, err)
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("qmd: external formatter %s: output is not valid UTF-8", name)
	}
	return string(out), nil
}
