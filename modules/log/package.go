// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package log provides logging capabilities for githistory.
// Concepts:
//
// * Logger: a Logger provides the leveled logging functions and hands the events to its writer
//
// * EventWriter: formats a log Event and writes it to a destination (eg: console, buffer)
//   - Flags control the prefix of every line (date, time, file, function, level)
//   - Colorize is switched on automatically when the destination is a terminal
//
// Call graph:
// -> log.Info()
// -> LoggerImpl.Log()
// -> prepare log event (caller, file, line, time)
// -> EventWriter.WriteEvent() formats and writes the line
package log
