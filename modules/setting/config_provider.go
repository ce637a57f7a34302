// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/ini.v1" //nolint:depguard
)

// ConfigSection is the subset of ini.Section used by the loaders
type ConfigSection interface {
	Name() string
	MapTo(any) error
	HasKey(key string) bool
	Key(key string) *ini.Key
	Keys() []*ini.Key
}

// ConfigProvider represents a config provider
type ConfigProvider interface {
	Section(section string) ConfigSection
	HasSection(section string) bool
}

type iniConfigProvider struct {
	file string
	ini  *ini.File
}

var _ ConfigProvider = &iniConfigProvider{}

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		KeyValueDelimiterOnWrite: " = ",
		IgnoreContinuation:       true,
	}
}

func newIniConfigProvider(file string, cfg *ini.File) *iniConfigProvider {
	cfg.NameMapper = ini.SnackCase
	return &iniConfigProvider{file: file, ini: cfg}
}

// NewConfigProviderFromData this function is mainly for testing purpose
func NewConfigProviderFromData(configContent string) (ConfigProvider, error) {
	cfg, err := ini.LoadSources(loadOptions(), []byte(configContent))
	if err != nil {
		return nil, err
	}
	return newIniConfigProvider("", cfg), nil
}

// NewConfigProviderFromFile load configuration from file.
// A missing file is not an error, the defaults (and command line flags) are used then.
func NewConfigProviderFromFile(file string) (ConfigProvider, error) {
	if file == "" {
		return newIniConfigProvider("", ini.Empty(loadOptions())), nil
	}
	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newIniConfigProvider(file, ini.Empty(loadOptions())), nil
		}
		return nil, fmt.Errorf("unable to check if %q is a file: %w", file, err)
	}
	cfg, err := ini.LoadSources(loadOptions(), file)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %q: %w", file, err)
	}
	return newIniConfigProvider(file, cfg), nil
}

func (p *iniConfigProvider) Section(section string) ConfigSection {
	return p.ini.Section(section)
}

func (p *iniConfigProvider) HasSection(section string) bool {
	return p.ini.HasSection(section)
}
