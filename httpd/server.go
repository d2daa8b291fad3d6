// Copyright 2015 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package httpd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hildxd/rcli/ratelimits"
	"golang.org/x/net/netutil"
	"k8s.io/klog/v2"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	config *Config
	server *http.Server
}

// NewHandler routes every GET/HEAD path to the Responder.
func NewHandler(cf *Config) (http.Handler, error) {
	mux := http.NewServeMux()
	mux.Handle("GET /{path...}", NewResponder(cf))

	var h http.Handler = mux
	if cf.QPS > 0 {
		rl, err := ratelimits.New(cf.QPS, 4)
		if err != nil {
			return nil, err
		}
		h = rl.Handler(h)
	}
	return LogHandler(h), nil
}

func NewServer(cf *Config) (*Server, error) {
	h, err := NewHandler(cf)
	if err != nil {
		return nil, err
	}

	return &Server{
		config: cf,
		server: &http.Server{
			Handler:      h,
			ReadTimeout:  cf.ReadTimeout,
			WriteTimeout: cf.WriteTimeout,
			IdleTimeout:  cf.IdleTimeout,
		},
	}, nil
}

// Run listens on the configured address and serves until ctx is done.
func (p *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", p.config.BindAddress)
	if err != nil {
		return fmt.Errorf("listen %s: %w", p.config.BindAddress, err)
	}
	return p.Serve(ctx, ln)
}

func (p *Server) Serve(ctx context.Context, ln net.Listener) error {
	if p.config.MaxConns > 0 {
		ln = netutil.LimitListener(ln, p.config.MaxConns)
	}

	klog.Infof("http server start at: %s, root %s", ln.Addr(), p.config.Root)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := p.server.Shutdown(sctx); err != nil {
			klog.Warningf("shutdown: %v", err)
		}
	}()

	err := p.server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		klog.Info("http server stopped")
		return nil
	}
	return err
}
