package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennyfrc/llmctx/internal/tokens"
)

// Test Plan:
// - Files appear in order inside the envelope, each under a File: header
// - The codemap lands after the file sections, inside the envelope
// - Unreadable and oversized files are skipped with the rest intact
// - The token estimate and budget flag are populated when a counter is set

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestAssemble_EnvelopeAndOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", "print('a')\n")
	b := writeFile(t, dir, "b.py", "print('b')") // no trailing newline

	got := Assemble([]string{a, b}, "<code_map>\n</code_map>\n", Options{})

	assert.True(t, strings.HasPrefix(got.Text, "<context>\n"))
	assert.True(t, strings.HasSuffix(got.Text, "</context>\n"))
	assert.Equal(t, []string{a, b}, got.Files)

	posA := strings.Index(got.Text, "File: "+a)
	posB := strings.Index(got.Text, "File: "+b)
	posMap := strings.Index(got.Text, "<code_map>")
	require.True(t, posA >= 0 && posB >= 0 && posMap >= 0)
	assert.Less(t, posA, posB)
	assert.Less(t, posB, posMap)
	assert.Less(t, posMap, strings.Index(got.Text, "</context>"))

	assert.Contains(t, got.Text, "print('b')\n</", "missing trailing newline is added")
}

func TestAssemble_InstructionsBlockLeadsEnvelope(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "ok\n")

	got := Assemble([]string{path}, "", Options{Instructions: "Focus on error handling"})

	want := "<context>\n<user_instructions>\nFocus on error handling\n</user_instructions>\n"
	assert.True(t, strings.HasPrefix(got.Text, want))
	assert.Less(t, strings.Index(got.Text, "</user_instructions>"), strings.Index(got.Text, "File: "))
}

func TestAssemble_SkipsUnreadableAndOversized(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	small := writeFile(t, dir, "small.py", "ok\n")
	big := writeFile(t, dir, "big.py", strings.Repeat("x", 100))
	missing := filepath.Join(dir, "missing.py")

	got := Assemble([]string{small, big, missing}, "", Options{MaxFileBytes: 50})

	assert.Equal(t, []string{small}, got.Files)
	assert.ElementsMatch(t, []string{big, missing}, got.Skipped)
	assert.NotContains(t, got.Text, "xxxx")
}

func TestAssemble_TokenEstimateAndBudget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", strings.Repeat("word ", 200))

	got := Assemble([]string{path}, "", Options{Counter: tokens.NewEstimator(), TokenBudget: 10})
	assert.Greater(t, got.TokenEstimate, 10)
	assert.True(t, got.OverBudget)

	relaxed := Assemble([]string{path}, "", Options{Counter: tokens.NewEstimator(), TokenBudget: 1 << 20})
	assert.False(t, relaxed.OverBudget)
}
