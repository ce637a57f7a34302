// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"time"
)

var statusToColor = map[int][]ColorAttribute{
	100: {Bold},
	200: {FgGreen},
	300: {FgYellow},
	304: {FgCyan},
	400: {Bold, FgRed},
	404: {FgYellow, Bold},
	500: {Bold, BgRed},
}

// ColoredStatus adds colors for HTTP status, s replaces the printed value when given
func ColoredStatus(status int, s ...string) *ColoredValue {
	attrs, ok := statusToColor[status]
	if !ok {
		attrs, ok = statusToColor[(status/100)*100]
	}
	if !ok {
		attrs = []ColorAttribute{Bold}
	}
	if len(s) > 0 {
		return NewColoredValue(s[0], attrs...)
	}
	return NewColoredValue(status, attrs...)
}

var methodToColor = map[string][]ColorAttribute{
	"GET":    {FgBlue},
	"POST":   {FgGreen},
	"DELETE": {FgRed},
	"HEAD":   {FgBlue, Faint},
}

// ColoredMethod adds colors for HTTP methods on log
func ColoredMethod(method string) *ColoredValue {
	attrs, ok := methodToColor[method]
	if !ok {
		attrs = []ColorAttribute{Bold}
	}
	return NewColoredValue(method, attrs...)
}

var durationColors = []struct {
	limit time.Duration
	attrs []ColorAttribute
}{
	{10 * time.Millisecond, []ColorAttribute{FgGreen}},
	{100 * time.Millisecond, []ColorAttribute{Bold}},
	{time.Second, []ColorAttribute{FgYellow}},
	{5 * time.Second, []ColorAttribute{FgRed, Bold}},
	{10 * time.Second, []ColorAttribute{BgRed}},
}

// ColoredTime converts the provided time to a ColoredValue for logging. The duration is always formatted in milliseconds.
func ColoredTime(duration time.Duration) *ColoredValue {
	str := fmt.Sprintf("%.1fms", float64(duration.Microseconds())/1000)
	for _, c := range durationColors {
		if duration < c.limit {
			return NewColoredValue(str, c.attrs...)
		}
	}
	return NewColoredValue(str, BgMagenta)
}
