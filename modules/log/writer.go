// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// EventWriter formats events and writes them to its output
type EventWriter struct {
	mu  sync.Mutex
	out io.Writer

	Flags    int
	Prefix   string
	Colorize bool
}

// NewEventWriter creates a writer without colors, mostly used for files and tests
func NewEventWriter(out io.Writer, flags int) *EventWriter {
	return &EventWriter{out: out, Flags: flags}
}

// NewConsoleWriter creates a writer for stdout, colors are enabled when stdout is a terminal
func NewConsoleWriter(flags int) *EventWriter {
	w := NewEventWriter(os.Stdout, flags)
	w.Colorize = CanColorStdout
	return w
}

// CanColorStdout reports if we can color the Stdout
var CanColorStdout = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// Copy of cheap integer to fixed-width decimal to ascii from logger.
func itoa(buf *[]byte, i, wid int) {
	var b [20]byte
	bp := len(b) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		b[bp] = byte('0' + i - q*10)
		bp--
		i = q
	}
	// i < 10
	b[bp] = byte('0' + i)
	*buf = append(*buf, b[bp:]...)
}

func (w *EventWriter) eventMessage(event *Event) string {
	if event.msgArgs == nil {
		return event.MsgSimpleText
	}
	args := make([]any, len(event.msgArgs))
	for i, arg := range event.msgArgs {
		if cv, ok := arg.(*ColoredValue); ok {
			if w.Colorize {
				args[i] = cv.colored()
			} else {
				args[i] = cv.String()
			}
			continue
		}
		args[i] = arg
	}
	return fmt.Sprintf(event.msgFormat, args...)
}

// EventFormatText formats the event as a single line (continuation lines are indented)
func (w *EventWriter) EventFormatText(event *Event) []byte {
	var buf []byte
	buf = append(buf, w.Prefix...)
	t := event.Time
	if w.Flags&(Ldate|Ltime|Lmicroseconds) != 0 {
		if w.Colorize {
			buf = append(buf, fgCyanBytes...)
		}
		if w.Flags&LUTC != 0 {
			t = t.UTC()
		}
		if w.Flags&Ldate != 0 {
			year, month, day := t.Date()
			itoa(&buf, year, 4)
			buf = append(buf, '/')
			itoa(&buf, int(month), 2)
			buf = append(buf, '/')
			itoa(&buf, day, 2)
			buf = append(buf, ' ')
		}
		if w.Flags&(Ltime|Lmicroseconds) != 0 {
			hour, minute, sec := t.Clock()
			itoa(&buf, hour, 2)
			buf = append(buf, ':')
			itoa(&buf, minute, 2)
			buf = append(buf, ':')
			itoa(&buf, sec, 2)
			if w.Flags&Lmicroseconds != 0 {
				buf = append(buf, '.')
				itoa(&buf, t.Nanosecond()/1e3, 6)
			}
			buf = append(buf, ' ')
		}
		if w.Colorize {
			buf = append(buf, resetBytes...)
		}
	}
	if w.Flags&(Lshortfile|Llongfile) != 0 && event.Filename != "" {
		if w.Colorize {
			buf = append(buf, fgGreenBytes...)
		}
		file := event.Filename
		if w.Flags&Lmedfile == Lmedfile {
			startIndex := len(file) - 20
			if startIndex > 0 {
				file = "..." + file[startIndex:]
			}
		} else if w.Flags&Lshortfile != 0 {
			startIndex := strings.LastIndexByte(file, '/')
			if startIndex > 0 && startIndex < len(file) {
				file = file[startIndex+1:]
			}
		}
		buf = append(buf, file...)
		buf = append(buf, ':')
		itoa(&buf, event.Line, -1)
		if w.Flags&(Lfuncname|Lshortfuncname) != 0 {
			buf = append(buf, ':')
		} else {
			if w.Colorize {
				buf = append(buf, resetBytes...)
			}
			buf = append(buf, ' ')
		}
	}
	if w.Flags&(Lfuncname|Lshortfuncname) != 0 && event.Caller != "" {
		if w.Colorize {
			buf = append(buf, fgGreenBytes...)
		}
		funcname := event.Caller
		if w.Flags&Lshortfuncname != 0 {
			lastIndex := strings.LastIndexByte(funcname, '.')
			if lastIndex > 0 && len(funcname) > lastIndex+1 {
				funcname = funcname[lastIndex+1:]
			}
		}
		buf = append(buf, funcname...)
		buf = append(buf, "()"...)
		if w.Colorize {
			buf = append(buf, resetBytes...)
		}
		buf = append(buf, ' ')
	}
	if w.Flags&(Llevel|Llevelinitial) != 0 {
		level := strings.ToUpper(event.Level.String())
		if w.Colorize {
			buf = append(buf, event.Level.Color()...)
		}
		buf = append(buf, '[')
		if w.Flags&Llevelinitial != 0 {
			buf = append(buf, level[0])
		} else {
			buf = append(buf, level...)
		}
		buf = append(buf, ']')
		if w.Colorize {
			buf = append(buf, resetBytes...)
		}
		buf = append(buf, ' ')
	}

	msg := w.eventMessage(event)
	// Now we need to prevent log spoofing:
	msg = strings.TrimSuffix(msg, "\n")
	lines := bytes.Split([]byte(msg), []byte("\n"))
	buf = append(buf, lines[0]...)
	for _, line := range lines[1:] {
		buf = append(buf, "\n        "...)
		buf = append(buf, line...)
	}
	if event.Stacktrace != "" {
		buf = append(buf, '\n')
		buf = append(buf, event.Stacktrace...)
		buf = bytes.TrimSuffix(buf, []byte("\n"))
	}
	buf = append(buf, '\n')
	return buf
}

// WriteEvent formats the event and writes it to the output
func (w *EventWriter) WriteEvent(event *Event) error {
	buf := w.EventFormatText(event)
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.out.Write(buf)
	return err
}
