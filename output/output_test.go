package output

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"extcount/logger"
)

func init() {
	logger.Init("error")
}

func sampleData() *Data {
	d := NewData()
	d.Add(".txt", 3)
	d.Add(".jpg", 1)
	return d
}

func TestDataKeepsInsertionOrder(t *testing.T) {
	d := NewData()
	d.Add(".pdf", 2)
	d.Add(".docx", 0)
	d.Add(".png", 7)
	d.Add(".pdf", 5)

	entries := d.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []Entry{{".pdf", 5}, {".docx", 0}, {".png", 7}}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: got %+v want %+v", i, entries[i], want[i])
		}
	}
	if d.Total() != 12 {
		t.Fatalf("unexpected total %d", d.Total())
	}
	if n, ok := d.Get(".png"); !ok || n != 7 {
		t.Fatalf("get: %d %t", n, ok)
	}
	var zero Data
	zero.Add(".x", 1)
	if zero.Len() != 1 {
		t.Fatal("zero value Data should be usable")
	}
}

func TestTimestamp(t *testing.T) {
	at := time.Date(2023, time.January, 2, 3, 4, 5, 0, time.Local)
	if got := Timestamp(at); got != "20230102030405" {
		t.Fatalf("unexpected timestamp %s", got)
	}
	at = time.Date(2026, time.December, 31, 23, 59, 59, 999, time.UTC)
	if got := Timestamp(at); got != "20261231235959" {
		t.Fatalf("unexpected timestamp %s", got)
	}
	if !regexp.MustCompile(`^\d{14}$`).MatchString(Now()) {
		t.Fatalf("Now() not 14 digits: %s", Now())
	}
}

func TestRenderText(t *testing.T) {
	doc, err := Render(sampleData(), "text")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "File Extension\tCount\n.txt\t3\n.jpg\t1\n"
	if string(doc) != want {
		t.Fatalf("got %q want %q", doc, want)
	}

	empty, err := Render(NewData(), "TXT")
	if err != nil || string(empty) != "File Extension\tCount\n" {
		t.Fatalf("empty render: %q %v", empty, err)
	}
}

func TestRenderTextRoundTrip(t *testing.T) {
	d := NewData()
	d.Add(".txt", 3)
	d.Add("images", 12)
	d.Add(".tar.gz", 0)
	doc, err := Render(d, FormatText)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	parsed, err := ParseText(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, want := parsed.Entries(), d.Entries()
	if len(got) != len(want) {
		t.Fatalf("got %d entries want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestParseTextErrors(t *testing.T) {
	if _, err := ParseText(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := ParseText([]byte("bad header\n")); err == nil {
		t.Fatal("expected header error")
	}
	if _, err := ParseText([]byte("File Extension\tCount\n.txt 3\n")); err == nil {
		t.Fatal("expected separator error")
	}
	if _, err := ParseText([]byte("File Extension\tCount\n.txt\tx\n")); err == nil {
		t.Fatal("expected count error")
	}
}

func TestRenderHTML(t *testing.T) {
	doc, err := Render(sampleData(), "html")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(doc)
	for _, want := range []string{"<title>File Extension Report</title>", "<h1>File Extension Report</h1>", "<th>File Extension</th>", "<th>Count</th>"} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in %s", want, html)
		}
	}
	if n := strings.Count(html, "<tr>"); n != 3 {
		t.Fatalf("expected header row plus two data rows, got %d <tr>", n)
	}
	cells := regexp.MustCompile(`<td>([^<]*)</td>`).FindAllStringSubmatch(html, -1)
	got := make([]string, 0, len(cells))
	for _, c := range cells {
		got = append(got, c[1])
	}
	want := []string{".txt", "3", ".jpg", "1"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("cells %v want %v", got, want)
	}
}

func TestRenderHTMLEscapesLabels(t *testing.T) {
	d := NewData()
	d.Add("<b>", 1)
	doc, err := Render(d, "html")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(doc), "<td><b></td>") {
		t.Fatal("label markup should be escaped")
	}
	if !strings.Contains(string(doc), "&lt;b&gt;") {
		t.Fatalf("expected escaped label in %s", doc)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	doc, err := Render(NewData(), "xyz")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if doc != nil {
		t.Fatal("no document expected")
	}
	if _, err := ReportSuffix("pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	created, err := EnsureDir(dir)
	if err != nil || !created {
		t.Fatalf("first ensure: %v %t", err, created)
	}
	marker := filepath.Join(dir, "keep")
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	created, err = EnsureDir(dir)
	if err != nil || created {
		t.Fatalf("second ensure: %v %t", err, created)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("existing folder contents changed: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Dir(dir))
	if len(entries) != 1 {
		t.Fatalf("expected exactly one folder, got %d entries", len(entries))
	}
}

func TestEnsureDirRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureDir(path); err == nil {
		t.Fatal("expected error when path is a file")
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, time.March, 9, 8, 7, 6, 0, time.Local)
	path, err := WriteReport(dir, []byte("hello"), "text", at)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "report20240309080706.txt" {
		t.Fatalf("unexpected name %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello" {
		t.Fatalf("read back: %q %v", data, err)
	}

	// Same second, same format: last writer wins.
	if _, err := WriteReport(dir, []byte("again"), "txt", at); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "again" {
		t.Fatalf("expected overwrite, got %q", data)
	}

	if _, err := WriteReport(dir, []byte("x"), "xyz", at); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestMetricsFields(t *testing.T) {
	m := Metrics{Groups: 2, TotalMatched: 5, ReportPath: "reports/r.txt"}
	f := m.Fields()
	if f["groups"] != 2 || f["total_matched"] != 5 || f["report_path"] != "reports/r.txt" {
		t.Fatalf("unexpected fields %v", f)
	}
}
