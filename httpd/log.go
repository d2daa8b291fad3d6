// Copyright 2015 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package httpd

import (
	"net/http"
	"net/http/httputil"
	"time"

	"k8s.io/klog/v2"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// LogHandler writes one access log line per request, and dumps the whole
// request at -v=4.
func LogHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if klog.V(4).Enabled() {
			if b, err := httputil.DumpRequest(r, false); err == nil {
				klog.Infof("%s", string(b))
			}
		}

		t0 := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		klog.V(1).InfoS("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", sw.status,
			"duration", time.Since(t0))
	})
}
