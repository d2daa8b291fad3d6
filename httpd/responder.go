// Copyright 2015 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package httpd

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"k8s.io/klog/v2"
)

type BodyKind int

const (
	TextBody BodyKind = iota
	HtmlBody
)

// Response is a status code plus either a text or an html body.
type Response struct {
	Status int
	Kind   BodyKind
	Body   []byte
}

func Text(status int, body []byte) *Response {
	return &Response{Status: status, Kind: TextBody, Body: body}
}

func Html(status int, body []byte) *Response {
	return &Response{Status: status, Kind: HtmlBody, Body: body}
}

func (p *Response) Write(w http.ResponseWriter) {
	h := w.Header()
	switch p.Kind {
	case HtmlBody:
		h.Set("Content-Type", "text/html; charset=utf-8")
	default:
		if p.Status == http.StatusOK {
			h.Set("Content-Type", http.DetectContentType(p.Body))
		} else {
			h.Set("Content-Type", "text/plain; charset=utf-8")
		}
	}
	h.Set("Content-Length", strconv.Itoa(len(p.Body)))
	w.WriteHeader(p.Status)
	if _, err := w.Write(p.Body); err != nil {
		klog.V(3).Infof("write response: %v", err)
	}
}

// Responder serves the files and directories under the configured root.
type Responder struct {
	config *Config
}

func NewResponder(cf *Config) *Responder {
	return &Responder{config: cf}
}

func (p *Responder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.Respond(r).Write(w)
}

func (p *Responder) Respond(r *http.Request) *Response {
	t := Resolve(r.Context(), p.config, r.PathValue("path"))

	switch t.Kind {
	case NotFound:
		return Text(http.StatusNotFound, []byte(fmt.Sprintf("%s not found", t.Path)))
	case Directory:
		b, err := Render(t.Entries)
		if err != nil {
			return Text(http.StatusInternalServerError, []byte(err.Error()))
		}
		return Html(http.StatusOK, b)
	case File:
		b, err := os.ReadFile(t.Path)
		if err != nil {
			return Text(http.StatusInternalServerError, []byte(err.Error()))
		}
		return Text(http.StatusOK, b)
	}

	klog.Errorf("resolve %s: %v", t.Path, t.Err)
	return Text(http.StatusInternalServerError, []byte(t.Err.Error()))
}
