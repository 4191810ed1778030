// Copyright 2018 The gVisor Authors.
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

package log

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

type testWriter struct {
	lines []string
	fail  bool
}

func (w *testWriter) Write(bytes []byte) (int, error) {
	if w.fail {
		return 0, fmt.Errorf("simulated failure")
	}
	w.lines = append(w.lines, string(bytes))
	return len(bytes), nil
}

func TestDropMessages(t *testing.T) {
	tw := &testWriter{}
	w := Writer{Next: tw}
	if _, err := w.Write([]byte("line 1\n")); err != nil {
		t.Fatalf("Write failed, err: %v", err)
	}

	tw.fail = true
	if _, err := w.Write([]byte("error\n")); err == nil {
		t.Fatalf("Write should have failed")
	}
	if _, err := w.Write([]byte("error\n")); err == nil {
		t.Fatalf("Write should have failed")
	}

	tw.fail = false
	if _, err := w.Write([]byte("line 2\n")); err != nil {
		t.Fatalf("Write failed, err: %v", err)
	}

	if want := 3; len(tw.lines) != want {
		t.Fatalf("Writer should have logged %d lines, got: %v", want, tw.lines)
	}
	if !strings.Contains(tw.lines[2], "Dropped 2") {
		t.Errorf("dropped-message marker missing, got: %v", tw.lines)
	}
}

func TestLevels(t *testing.T) {
	tw := &testWriter{}
	l := &BasicLogger{Level: Info, Emitter: &Writer{Next: tw}}

	l.Debugf("dropped")
	if len(tw.lines) != 0 {
		t.Errorf("Debug should not be logged at Info level, got: %v", tw.lines)
	}
	l.Infof("kept")
	if len(tw.lines) != 1 {
		t.Errorf("Info should be logged at Info level, got: %v", tw.lines)
	}

	l.SetLevel(Debug)
	if !l.IsLogging(Debug) {
		t.Errorf("IsLogging(Debug): got false, wanted true")
	}
	l.Debugf("kept too")
	if len(tw.lines) != 2 {
		t.Errorf("Debug should be logged at Debug level, got: %v", tw.lines)
	}
}

func TestMultiEmitter(t *testing.T) {
	tw1 := &testWriter{}
	tw2 := &testWriter{}
	me := MultiEmitter{&Writer{Next: tw1}, &Writer{Next: tw2}}
	l := &BasicLogger{Level: Info, Emitter: &me}

	l.Infof("fanned out")
	for i, tw := range []*testWriter{tw1, tw2} {
		if len(tw.lines) != 1 || !strings.Contains(tw.lines[0], "fanned out") {
			t.Errorf("writer %d: got %v, wanted one line containing %q", i, tw.lines, "fanned out")
		}
	}
}

func TestRateLimitedLogger(t *testing.T) {
	tw := &testWriter{}
	l := RateLimitedLogger(&BasicLogger{Level: Info, Emitter: &Writer{Next: tw}}, time.Hour)

	l.Warningf("first")
	l.Warningf("suppressed")
	if want := 1; len(tw.lines) != want {
		t.Errorf("rate-limited logger emitted %d lines, wanted %d: %v", len(tw.lines), want, tw.lines)
	}
}
