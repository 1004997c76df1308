package utils

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/stretchr/testify/suite"
)

// recordingLogger keeps Errorf lines; LogStack uses nothing else.
type recordingLogger struct {
	logging.Logger
	errors []string
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

type ErrorUtilsSuite struct {
	suite.Suite
}

func TestErrorUtilsSuite(t *testing.T) {
	suite.Run(t, new(ErrorUtilsSuite))
}

func (s *ErrorUtilsSuite) TestWrapIfNotNilNil() {
	s.NoError(WrapIfNotNil(nil, "ignored"))
}

func (s *ErrorUtilsSuite) TestWrapIfNotNilPrefixesShortCallerAndContext() {
	base := errors.New("disk full")

	err := WrapIfNotNil(base, "settings.yaml")

	s.Require().Error(err)
	s.ErrorIs(err, base)
	s.True(strings.HasPrefix(err.Error(), "utils.(*ErrorUtilsSuite).TestWrapIfNotNilPrefixesShortCallerAndContext"))
	s.True(strings.HasSuffix(err.Error(), " - settings.yaml: disk full"))
	s.NotContains(err.Error(), "github.com/")
}

func (s *ErrorUtilsSuite) TestShortFuncName() {
	s.Equal("settings.(*FileStore).Load", shortFuncName("github.com/Nephrolytics-ai/lecture-summarizer/pkg/settings.(*FileStore).Load"))
	s.Equal("main.main", shortFuncName("main.main"))
}

func (s *ErrorUtilsSuite) TestLogStackRecoveredPanic() {
	log := &recordingLogger{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				LogStack(log, "worker")
			}
		}()
		panic("boom")
	}()

	s.Require().NotEmpty(log.errors)
	s.Equal("worker stack trace:", log.errors[0])
	for _, line := range log.errors[1:] {
		s.False(strings.HasPrefix(strings.TrimSpace(line), "runtime."), line)
	}
	s.Contains(strings.Join(log.errors, "\n"), "TestLogStackRecoveredPanic")
}
