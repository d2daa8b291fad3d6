// Copyright 2015-2020 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hildxd/rcli/flags"
	"github.com/hildxd/rcli/httpd"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestJwtCmd(t *testing.T) {
	out, err := execute(t, "jwt", "sign", "-s", "sub", "-a", "aud", "-e", "1d", "--secret", "asdiuop123")
	require.NoError(t, err)
	token := strings.TrimSpace(out)
	require.Len(t, strings.Split(token, "."), 3)

	out, err = execute(t, "jwt", "verify", "-t", token, "-a", "aud", "--secret", "asdiuop123")
	require.NoError(t, err)
	require.Contains(t, out, "sub: sub")
	require.Contains(t, out, "- aud")

	_, err = execute(t, "jwt", "verify", "-t", token, "--secret", "wrong")
	require.Error(t, err)

	_, err = execute(t, "jwt", "sign", "-s", "sub", "-e", "1x", "--secret", "asdiuop123")
	require.Error(t, err)

	_, err = execute(t, "jwt", "sign", "-s", "sub", "--secret", "")
	require.Error(t, err)
}

func TestJwtCmdAudiences(t *testing.T) {
	out, err := execute(t, "jwt", "sign", "-s", "sub", "-a", "aud", "-a", "web", "--secret", "asdiuop123")
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	for _, aud := range []string{"aud", "web"} {
		out, err = execute(t, "jwt", "verify", "-t", token, "-a", aud, "--secret", "asdiuop123")
		require.NoError(t, err, aud)
		require.Contains(t, out, "- aud\n- web", aud)
	}

	_, err = execute(t, "jwt", "verify", "-t", token, "-a", "other", "--secret", "asdiuop123")
	require.Error(t, err)
}

func TestJwtHelpHidesSecret(t *testing.T) {
	t.Setenv(secretEnv, "s3cr3t-value")

	for _, sub := range []string{"sign", "verify"} {
		out, err := execute(t, "jwt", sub, "--help")
		require.NoError(t, err, sub)
		require.Contains(t, out, "--secret", sub)
		require.NotContains(t, out, "s3cr3t-value", sub)
	}
}

func TestJwtSecretEnv(t *testing.T) {
	t.Setenv(secretEnv, "from-env")

	out, err := execute(t, "jwt", "sign", "-s", "sub")
	require.NoError(t, err)

	_, err = execute(t, "jwt", "verify", "-t", strings.TrimSpace(out))
	require.NoError(t, err)

	// an explicit flag wins over the environment
	_, err = execute(t, "jwt", "verify", "-t", strings.TrimSpace(out), "--secret", "other")
	require.Error(t, err)
}

func TestHttpCmdInvalidDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0644))

	_, err := execute(t, "http", "-d", file)
	require.ErrorContains(t, err, flags.ErrNotDirectory.Error())

	_, err = execute(t, "http", "-d", filepath.Join(dir, "missing"))
	require.Error(t, err)

	_, err = execute(t, "http", "-p", "70000")
	require.Error(t, err)
}

func TestHttpFileConfig(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "rcli.yml")
	require.NoError(t, os.WriteFile(conf, []byte("dir: "+dir+"\nport: 9000\nqps: 10\n"), 0644))

	opts := newHttpOptions()
	cmd := newHttpCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"-c", conf, "-p", "9001", "--timeout", "3s"}))

	fc, err := opts.fileConfig(cmd.Flags())
	require.NoError(t, err)
	require.Equal(t, dir, fc.Dir)
	require.Equal(t, uint16(9001), fc.Port)
	require.Equal(t, uint32(10), fc.QPS)
	require.Equal(t, 3*time.Second, fc.ReadTimeout)
	require.Equal(t, httpd.DefaultIdleTimeout, fc.IdleTimeout)
}

func TestRootCmdErrorPrintedOnce(t *testing.T) {
	out, err := execute(t, "jwt", "verify", "-t", "not.a.token", "--secret", "x")
	require.Error(t, err)
	require.NotContains(t, out, "Error:")
	require.True(t, newRootCmd().SilenceErrors)
}
