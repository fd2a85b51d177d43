package output

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

const (
	FormatText = "text"
	FormatHTML = "html"

	textHeader = "File Extension\tCount"
)

// ErrUnsupportedFormat is returned for a report format other than text or html.
var ErrUnsupportedFormat = errors.New("unsupported report format")

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>File Extension Report</title>
  </head>
  <body>
    <h1>File Extension Report</h1>
    <table>
      <tr>
        <th>File Extension</th>
        <th>Count</th>
      </tr>
{{- range .}}
      <tr>
        <td>{{.Label}}</td>
        <td>{{.Count}}</td>
      </tr>
{{- end}}
    </table>
  </body>
</html>
`))

// NormalizeFormat maps user input to FormatText or FormatHTML.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "txt":
		return FormatText, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ReportSuffix is the report file suffix for a format, without the dot.
func ReportSuffix(format string) (string, error) {
	f, err := NormalizeFormat(format)
	if err != nil {
		return "", err
	}
	if f == FormatText {
		return "txt", nil
	}
	return "html", nil
}

// Render turns data into a report document. It does not touch the filesystem.
func Render(data *Data, format string) ([]byte, error) {
	f, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatHTML:
		return renderHTML(data)
	default:
		return renderText(data), nil
	}
}

func renderText(data *Data) []byte {
	var buf bytes.Buffer
	buf.WriteString(textHeader)
	buf.WriteByte('\n')
	for _, e := range data.Entries() {
		buf.WriteString(e.Label)
		buf.WriteByte('\t')
		buf.WriteString(strconv.Itoa(e.Count))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func renderHTML(data *Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlReport.Execute(&buf, data.Entries()); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseText reads a text report back into Data.
func ParseText(doc []byte) (*Data, error) {
	data := NewData()
	sc := bufio.NewScanner(bytes.NewReader(doc))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if line == 1 {
			if text != textHeader {
				return nil, fmt.Errorf("line 1: unexpected header %q", text)
			}
			continue
		}
		i := strings.LastIndexByte(text, '\t')
		if i < 0 {
			return nil, fmt.Errorf("line %d: missing tab separator", line)
		}
		count, err := strconv.Atoi(text[i+1:])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid count: %w", line, err)
		}
		data.Add(text[:i], count)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if line == 0 {
		return nil, errors.New("empty report")
	}
	return data, nil
}
