/*
 * Copyright 2016 yubo. All rights reserved.
 * Use of this source code is governed by a BSD-style
 * license that can be found in the LICENSE file.
 */
package flags

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrNotDirectory    = errors.New("not a directory")
)

// Strings is a repeatable string flag.
type Strings []string

func (i *Strings) String() string {
	return strings.Join([]string(*i), ",")
}

func (i *Strings) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func (i *Strings) Type() string {
	return "strings"
}

func (i *Strings) Get() []string {
	return []string(*i)
}

// Port is a tcp port number.
type Port uint16

func (p *Port) String() string {
	return strconv.Itoa(int(*p))
}

func (p *Port) Set(value string) error {
	n, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", value, err)
	}
	*p = Port(n)
	return nil
}

func (p *Port) Type() string {
	return "port"
}

// Duration accepts an integer followed by one of s, m, h or d.
type Duration time.Duration

func (d *Duration) String() string {
	return time.Duration(*d).String()
}

func (d *Duration) Set(value string) error {
	v, err := ParseDuration(value)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) Type() string {
	return "duration"
}

// Dir is a path that must name an existing directory.
type Dir string

func (d *Dir) String() string {
	return string(*d)
}

func (d *Dir) Set(value string) error {
	if err := VerifyDir(value); err != nil {
		return err
	}
	*d = Dir(value)
	return nil
}

func (d *Dir) Type() string {
	return "dir"
}

// ParseDuration parses values like 30s, 5m, 12h or 14d.
func ParseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("%w %q", ErrInvalidDuration, s)
	}

	num, unit := s[:len(s)-1], s[len(s)-1]
	n, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %s", ErrInvalidDuration, s, err)
	}

	switch unit {
	case 's':
		return time.Duration(n) * time.Second, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("%w %q: use d, h, m or s", ErrInvalidDuration, s)
}

func VerifyDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	return nil
}
