// Copyright 2015 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package httpd

import (
	"bytes"
	"html/template"
)

var listTmpl = template.Must(template.New("list").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>File Server</title>
</head>
<body>
    <ul>
{{- range .}}
        <li><a href="{{.LinkURL}}" target="_blank">{{.DisplayName}}</a></li>
{{- end}}
    </ul>
</body>
</html>
`))

// Render returns the html index for entries, in the given order.
func Render(entries []DirEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := listTmpl.Execute(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
