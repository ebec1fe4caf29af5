package test_utils

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
	"github.com/pkg/diff"
)

func RemoveNewlines(input string) string {
	return strings.ReplaceAll(input, "\n", "")
}

func Dedent(input string) string {
	return dedent.Dedent( // removes any leading whitespace
		strings.ReplaceAll( // compress linebreaks to 1 or 2 lines max
			strings.TrimLeft(
				strings.TrimRight(input, " \n\r"), // remove any trailing whitespace
				" \t\r\n"),                        // remove leading whitespace
			"\n\n\n", "\n\n"),
	)
}

func ANSIDiff(x, y interface{}, opts ...cmp.Option) string {
	escapeCode := func(code int) string {
		return fmt.Sprintf("\x1b[%dm", code)
	}
	d := cmp.Diff(x, y, opts...)
	if d == "" {
		return ""
	}
	ss := strings.Split(d, "\n")
	for i, s := range ss {
		switch {
		case strings.HasPrefix(s, "-"):
			ss[i] = escapeCode(31) + s + escapeCode(0)
		case strings.HasPrefix(s, "+"):
			ss[i] = escapeCode(32) + s + escapeCode(0)
		}
	}
	return strings.Join(ss, "\n")
}

// AssertTextEqual fails with a unified diff when got differs from want.
func AssertTextEqual(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	var buf bytes.Buffer
	if err := diff.Text("want", "got", want, got, &buf); err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	t.Errorf("output mismatch:\n%s", buf.String())
}

// RedactTestName replaces characters the snapshot file naming cannot carry
// with underscores.
func RedactTestName(testCaseName string) string {
	replacer := strings.NewReplacer(
		"#", "_", "<", "_", ">", "_", ")", "_", "(", "_", ":", "_",
		" ", "_", "'", "_", "\"", "_", "@", "_", "`", "_", "+", "_",
		"{", "_", "}", "_", "/", "_",
	)
	return replacer.Replace(testCaseName)
}

type SnapshotOptions struct {
	Testing      *testing.T
	TestCaseName string
	Input        string
	Output       string
	FolderName   string
}

// MakeSnapshot records the input and the output of one test case in a
// named snapshot.
func MakeSnapshot(options *SnapshotOptions) {
	t := options.Testing

	folderName := "__snapshots__"
	if options.FolderName != "" {
		folderName = options.FolderName
	}
	snapshotName := RedactTestName(options.TestCaseName)

	s := snaps.WithConfig(
		snaps.Filename(snapshotName),
		snaps.Dir(folderName),
	)

	snapshot := "## Input\n\n```\n"
	snapshot += Dedent(options.Input)
	snapshot += "\n```\n\n## Output\n\n```js\n"
	snapshot += Dedent(options.Output)
	snapshot += "\n```"

	s.MatchSnapshot(t, snapshot)
}
