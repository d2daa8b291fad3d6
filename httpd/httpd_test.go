// Copyright 2015 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package httpd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testRoot lays out:
//
//	a.txt      "hello"
//	b.txt      "world"
//	sub/c.txt  "sub file"
func testRoot(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"a.txt":     "hello",
		"b.txt":     "world",
		"sub/c.txt": "sub file",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

func testConfig(t *testing.T, root string) *Config {
	t.Helper()

	fc := NewFileConfig()
	fc.Dir = root
	cf, err := NewConfig(fc)
	require.NoError(t, err)
	return cf
}
