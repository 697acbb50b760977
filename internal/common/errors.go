// internal/common/errors.go
package common

import (
	"fmt"
	"strings"
)

// Pipeline stage names used in error messages.
const (
	StageParse     = "parse"
	StagePairs     = "pairs"
	StageAlign     = "align"
	StageDerep     = "dereplicate"
	StageNormalize = "normalize"
	StageStats     = "significance"
	StageConfig    = "config"
	StageExternal  = "external"
)

// ParseError reports a malformed or empty sequence file.
type ParseError struct {
	Path string
	Line int // 0 when unknown
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error")
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// LookupError reports an identifier that one stage produced and a later stage
// could not resolve. It always aborts the run.
type LookupError struct {
	Stage string
	Side  string // "candidate" or "reference"
	ID    string
	Other string // the id it was paired with, if any
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("%s: %s id %q not found", e.Stage, e.Side, e.ID)
	if e.Other != "" {
		msg += fmt.Sprintf(" (paired with %q)", e.Other)
	}
	return msg
}

// AlignmentError reports that one pair could not be scored.
type AlignmentError struct {
	CandidateID string
	ReferenceID string
	Reason      string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%s: %s vs %s: %s", StageAlign, e.CandidateID, e.ReferenceID, e.Reason)
}

// DegenerateStatisticsWarning flags significance results that cannot be
// trusted. The pipeline keeps going when it is returned.
type DegenerateStatisticsWarning struct {
	Reason string
}

func (e *DegenerateStatisticsWarning) Error() string {
	return StageStats + ": degenerate statistics: " + e.Reason
}

// ConfigurationError is returned before any alignment work starts.
type ConfigurationError struct {
	Option string
	Msg    string
}

func (e *ConfigurationError) Error() string {
	if e.Option == "" {
		return StageConfig + ": " + e.Msg
	}
	return fmt.Sprintf("%s: --%s: %s", StageConfig, e.Option, e.Msg)
}

// Configf builds a ConfigurationError for option.
func Configf(option, format string, a ...any) error {
	return &ConfigurationError{Option: option, Msg: fmt.Sprintf(format, a...)}
}
