// Copyright 2015-2020 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hildxd/rcli/flags"
	"github.com/hildxd/rcli/httpd"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type httpOptions struct {
	configFile string
	dir        flags.Dir
	port       flags.Port
	maxConns   int
	qps        uint32
	timeout    time.Duration
}

func newHttpOptions() *httpOptions {
	return &httpOptions{
		dir:     ".",
		port:    httpd.DefaultPort,
		timeout: httpd.DefaultWriteTimeout,
	}
}

// usage: rcli http -d ./public -p 8000
func newHttpCmd(opts *httpOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "start a http file server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, opts, cmd.Flags())
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.configFile, "config", "c", "", "yaml config file, flags set on the command line take precedence")
	fs.VarP(&opts.dir, "dir", "d", "root directory to serve")
	fs.VarP(&opts.port, "port", "p", "listen port, the server binds on all interfaces")
	fs.IntVar(&opts.maxConns, "max-conns", 0, "max concurrent connections, 0 means unlimited")
	fs.Uint32Var(&opts.qps, "qps", 0, "max requests per second per client, 0 means unlimited")
	fs.DurationVar(&opts.timeout, "timeout", opts.timeout, "read and write timeout")

	return cmd
}

func (o *httpOptions) fileConfig(fs *pflag.FlagSet) (*httpd.FileConfig, error) {
	fc := httpd.NewFileConfig()
	if o.configFile != "" {
		if err := fc.ReadFile(o.configFile); err != nil {
			return nil, err
		}
	}

	if fs.Changed("dir") {
		fc.Dir = string(o.dir)
	}
	if fs.Changed("port") {
		fc.Port = uint16(o.port)
	}
	if fs.Changed("max-conns") {
		fc.MaxConns = o.maxConns
	}
	if fs.Changed("qps") {
		fc.QPS = o.qps
	}
	if fs.Changed("timeout") {
		fc.ReadTimeout = o.timeout
		fc.WriteTimeout = o.timeout
	}
	return fc, nil
}

func serve(ctx context.Context, opts *httpOptions, fs *pflag.FlagSet) error {
	fc, err := opts.fileConfig(fs)
	if err != nil {
		return err
	}

	cf, err := httpd.NewConfig(fc)
	if err != nil {
		return err
	}

	s, err := httpd.NewServer(cf)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}
