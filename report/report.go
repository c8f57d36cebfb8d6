/*
	Copyright 2025 The benchviz Authors
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package report renders the HTML index page that links the generated
// charts together.  The render command writes it next to the chart files,
// and the serve mode returns it at the root path.
package report

import (
	"fmt"
	"io"

	"github.com/google/safehtml/template"
)

// An Entry is one chart listed on the index page.
type Entry struct {
	// File is the image location relative to the page.
	File string
	// Title is the caption shown under the image.
	Title string
}

const pageText = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #333; }
figure { margin: 2em 0; }
figure img { max-width: 100%; border: 1px solid #ddd; }
figcaption { margin-top: 0.5em; color: #555; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Charts}}<figure>
<img src="{{.File}}" alt="{{.Title}}">
<figcaption>{{.Title}}</figcaption>
</figure>
{{end}}</body>
</html>
`

var page = template.Must(template.New("report").ParseFromTrustedTemplate(
	template.MakeTrustedTemplate(pageText)))

type pageData struct {
	Title  string
	Charts []Entry
}

// Write renders the index page over the given charts, in order.
func Write(w io.Writer, title string, charts []Entry) error {
	if err := page.Execute(w, pageData{Title: title, Charts: charts}); err != nil {
		return fmt.Errorf("rendering report index: %w", err)
	}
	return nil
}
