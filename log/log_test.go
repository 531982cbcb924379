// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestFilterDropsBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := NewFilter(NewStdLogger(&buf), FilterLevel(LevelWarn))

	l.Log(LevelInfo, "msg", "should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("info line leaked through a warn filter: %q", buf.String())
	}

	l.Log(LevelWarn, "msg", "should pass")
	if !strings.Contains(buf.String(), "should pass") {
		t.Fatalf("warn line did not pass the filter: %q", buf.String())
	}
}

func TestHelperNilIsSafe(t *testing.T) {
	var h *Helper
	h.Infof("this must not panic: %d", 1)
}

func TestHelperRoutesThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	h := NewHelper(NewStdLogger(&buf))
	h.Errorf("boom: %s", "detail")
	if !strings.Contains(buf.String(), "level=error") || !strings.Contains(buf.String(), "boom: detail") {
		t.Fatalf("unexpected log line: %q", buf.String())
	}
}

func TestParseLevelRoundTrip(t *testing.T) {
	for _, lvl := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		got, ok := ParseLevel(lvl.String())
		if !ok || got != lvl {
			t.Fatalf("ParseLevel(%q) = %v, %v, want %v, true", lvl.String(), got, ok, lvl)
		}
	}
}
