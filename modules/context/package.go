// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package context provides the request contexts of the HTTP handlers and their JSON helpers.
package context
