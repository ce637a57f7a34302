// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"net"
	"strconv"
	"time"
)

// Server settings
var (
	HTTPAddr           string
	HTTPPort           string
	GracefulHammerTime time.Duration
	ReadHeaderTimeout  time.Duration
	DisableRouterLog   bool
)

func loadServerFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("server")
	HTTPAddr = sec.Key("HTTP_ADDR").MustString("0.0.0.0")
	HTTPPort = sec.Key("HTTP_PORT").MustString("8084")
	GracefulHammerTime = sec.Key("GRACEFUL_HAMMER_TIME").MustDuration(60 * time.Second)
	ReadHeaderTimeout = sec.Key("READ_HEADER_TIMEOUT").MustDuration(10 * time.Second)
	DisableRouterLog = sec.Key("DISABLE_ROUTER_LOG").MustBool(false)
}

// ListenAddr returns the address the web server binds to
func ListenAddr() string {
	return net.JoinHostPort(HTTPAddr, HTTPPort)
}

// SetListenPort overrides the configured port, used by the command line flags
func SetListenPort(port int) {
	HTTPPort = strconv.Itoa(port)
}
