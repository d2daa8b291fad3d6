// Copyright 2015 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package httpd

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/hildxd/rcli/flags"
	"gopkg.in/yaml.v2"
)

const (
	DefaultPort         = 8080
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// Config is the server configuration. It is built once by NewConfig and
// shared read-only by every request.
type Config struct {
	Root        string
	BindAddress string

	MaxConns     int
	QPS          uint32
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// FileConfig is the on-disk form of the server options.
type FileConfig struct {
	Dir          string        `yaml:"dir"`
	Port         uint16        `yaml:"port"`
	MaxConns     int           `yaml:"maxConns"`
	QPS          uint32        `yaml:"qps"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

func NewFileConfig() *FileConfig {
	return &FileConfig{
		Dir:          ".",
		Port:         DefaultPort,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
}

// ReadFile overlays the yaml file at path onto fc.
func (fc *FileConfig) ReadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(b, fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// NewConfig validates fc and binds the server on all interfaces at fc.Port.
func NewConfig(fc *FileConfig) (*Config, error) {
	if err := flags.VerifyDir(fc.Dir); err != nil {
		return nil, fmt.Errorf("invalid root directory: %w", err)
	}
	if fc.MaxConns < 0 {
		return nil, fmt.Errorf("maxConns must not be negative, got %d", fc.MaxConns)
	}

	return &Config{
		Root:         fc.Dir,
		BindAddress:  net.JoinHostPort("0.0.0.0", strconv.Itoa(int(fc.Port))),
		MaxConns:     fc.MaxConns,
		QPS:          fc.QPS,
		ReadTimeout:  fc.ReadTimeout,
		WriteTimeout: fc.WriteTimeout,
		IdleTimeout:  fc.IdleTimeout,
	}, nil
}
