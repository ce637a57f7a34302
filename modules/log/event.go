// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"time"
)

// Event represents a logging event
type Event struct {
	Time time.Time

	Caller   string
	Filename string
	Line     int

	Level Level

	MsgSimpleText string // only set when there are no arguments

	msgFormat string
	msgArgs   []any

	Stacktrace string
}
