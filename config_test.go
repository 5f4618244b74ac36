// Copyright 2024 Ross Light
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
	"testing"
	"time"
)

func TestDefaultConfigUsesQuartoExtensions(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Flavor != Quarto {
		t.Errorf("DefaultConfig().Flavor = %v, want Quarto", cfg.Flavor)
	}
	if !cfg.Extensions.Strikeout || !cfg.Extensions.PipeTables || !cfg.Extensions.FencedDivs {
		t.Errorf("DefaultConfig().Extensions = %+v, want the full Quarto preset enabled", cfg.Extensions)
	}
	if cfg.LineWidth != 80 {
		t.Errorf("DefaultConfig().LineWidth = %d, want 80", cfg.LineWidth)
	}
}

func TestNewConfigCommonMarkDisablesExtensions(t *testing.T) {
	cfg := NewConfig(CommonMark)
	if (cfg.Extensions != Extensions{}) {
		t.Errorf("NewConfig(CommonMark).Extensions = %+v, want all disabled", cfg.Extensions)
	}
}

func TestWithDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{Flavor: Quarto, Extensions: extensionsForFlavor(Quarto)}
	out := cfg.withDefaults()
	if out.Formatters == nil {
		t.Error("withDefaults() left Formatters nil")
	}
	if out.FormatterTimeout != 5*time.Second {
		t.Errorf("withDefaults().FormatterTimeout = %v, want 5s", out.FormatterTimeout)
	}
	if cfg.Formatters != nil {
		t.Error("withDefaults() mutated the original Config")
	}
}

func TestWithDefaultsNilConfig(t *testing.T) {
	var cfg *Config
	out := cfg.withDefaults()
	if out.LineWidth != DefaultConfig().LineWidth {
		t.Errorf("nil Config.withDefaults().LineWidth = %d, want DefaultConfig's %d", out.LineWidth, DefaultConfig().LineWidth)
	}
}

func TestWithDefaultsPanicsOnNegativeLineWidth(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("withDefaults() with a negative LineWidth did not panic")
		}
	}()
	cfg := DefaultConfig()
	cfg.LineWidth = -1
	cfg.withDefaults()
}

func TestConfigUnlimited(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LineWidth = 0
	if !cfg.unlimited() {
		t.Error("Config{LineWidth: 0}.unlimited() = false, want true")
	}
	cfg.LineWidth = 80
	if cfg.unlimited() {
		t.Error("Config{LineWidth: 80}.unlimited() = true, want false")
	}
}

func TestWrapModeString(t *testing.T) {
	if got := Wrap.String(); got != "wrap" {
		t.Errorf("Wrap.String() = %q, want %q", got, "wrap")
	}
	if got := Preserve.String(); got != "preserve" {
		t.Errorf("Preserve.String() = %q, want %q", got, "preserve")
	}
}
