// Copyright 2026 The rs4lk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package testlog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/log/testlog"
)

func TestContext(t *testing.T) {
	l := log.FromCtx(testlog.Context(t))
	assert.NotEqual(t, log.Root(), l)
	assert.True(t, l.Enabled(log.DebugLevel))
	assert.NotPanics(t, func() {
		l.New("asn", 100, 7, "non-string key", "dangling").Info("Logged")
	})
}

func TestNewLoggerLevel(t *testing.T) {
	l := testlog.NewLogger(t, zaptest.Level(zapcore.ErrorLevel))
	assert.False(t, l.Enabled(log.InfoLevel))
	assert.True(t, l.Enabled(log.ErrorLevel))
}
