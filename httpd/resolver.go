// Copyright 2015 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package httpd

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"
)

type TargetKind int

const (
	NotFound TargetKind = iota
	Directory
	File
	ReadError
)

func (k TargetKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case Directory:
		return "Directory"
	case File:
		return "File"
	case ReadError:
		return "ReadError"
	}
	return "Unknown"
}

// Target is the result of resolving one request path.
type Target struct {
	Kind TargetKind
	// Path is the filesystem path the request resolved to.
	Path    string
	Entries []DirEntry
	Err     error
}

// DirEntry is one child of a listed directory.
type DirEntry struct {
	DisplayName string
	LinkURL     string
}

// Resolve maps reqPath onto root. The path is cleaned as if rooted at
// "/" first, so ".." never climbs above root.
func Resolve(ctx context.Context, cf *Config, reqPath string) Target {
	rel := path.Clean("/" + reqPath)
	p := filepath.Join(cf.Root, filepath.FromSlash(rel))

	fi, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return Target{Kind: NotFound, Path: p}
	}
	if err != nil {
		return Target{Kind: ReadError, Path: p, Err: err}
	}

	if !fi.IsDir() {
		// "a.txt/" names a directory that does not exist
		if strings.HasSuffix(reqPath, "/") {
			return Target{Kind: NotFound, Path: p + "/"}
		}
		return Target{Kind: File, Path: p}
	}

	if err := ctx.Err(); err != nil {
		return Target{Kind: ReadError, Path: p, Err: err}
	}

	dirs, err := os.ReadDir(p)
	if err != nil {
		return Target{Kind: ReadError, Path: p, Err: err}
	}

	// os.ReadDir returns the entries sorted by name
	entries := make([]DirEntry, 0, len(dirs))
	for _, d := range dirs {
		klog.Info(filepath.Join(p, d.Name()))
		entries = append(entries, newDirEntry(cf.BindAddress, rel, d))
	}

	return Target{Kind: Directory, Path: p, Entries: entries}
}

func newDirEntry(addr, dir string, d fs.DirEntry) DirEntry {
	name := d.Name()
	rel := path.Join(dir, name)
	if d.IsDir() {
		rel += "/"
	}

	u := url.URL{Scheme: "http", Host: addr, Path: rel}
	return DirEntry{
		DisplayName: name,
		LinkURL:     u.String(),
	}
}
