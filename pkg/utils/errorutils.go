package utils

import (
	"fmt"
	"path"
	"runtime"
	"strings"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
)

const maxStackDepth = 32

// WrapIfNotNil prefixes err with the calling function, in the same
// "pkg.Func" form the log lines use, followed by any context values.
func WrapIfNotNil(err error, context ...string) error {
	if err == nil {
		return nil
	}

	parts := make([]string, 0, 1+len(context))
	parts = append(parts, callerName(2))
	parts = append(parts, context...)

	return fmt.Errorf("%s: %w", strings.Join(parts, " - "), err)
}

func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	return shortFuncName(fn.Name())
}

// shortFuncName drops the import path: ".../pkg/settings.(*FileStore).Load"
// becomes "settings.(*FileStore).Load".
func shortFuncName(name string) string {
	return path.Base(name)
}

// LogStack writes the caller's stack at error level, one frame per line.
// Runtime frames (gopanic, deferreturn) are left out.
func LogStack(log logging.Logger, title string) {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	log.Errorf("%s stack trace:", title)
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			log.Errorf("    %s (%s:%d)", shortFuncName(frame.Function), frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
}
