// Copyright 2025 netsort Authors
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

package network

import "log"

// Logger is a minimal severity-gated wrapper around the standard log
// package, used for per-improvement and progress reporting. Verbosity 0
// logs nothing; higher levels are cumulative.
type Logger struct {
	Verbosity int
}

// NewLogger returns a Logger at the given verbosity.
func NewLogger(verbosity int) *Logger {
	return &Logger{Verbosity: verbosity}
}

// Improvement logs a frontier improvement (verbosity >= 1).
func (l *Logger) Improvement(format string, args ...any) {
	if l.Verbosity >= 1 {
		log.Printf(format, args...)
	}
}

// Progress logs a periodic heartbeat such as iteration throughput
// (verbosity >= 3).
func (l *Logger) Progress(format string, args ...any) {
	if l.Verbosity >= 3 {
		log.Printf(format, args...)
	}
}

// Debug logs fine-grained mutation/test tracing (verbosity >= 4).
func (l *Logger) Debug(format string, args ...any) {
	if l.Verbosity >= 4 {
		log.Printf(format, args...)
	}
}
