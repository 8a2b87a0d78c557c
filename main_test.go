package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/cvflow/content"
	"github.com/ByLCY/cvflow/internal/config"
	"github.com/ByLCY/cvflow/internal/schemas"
	"github.com/ByLCY/cvflow/layout"
)

const sampleInput = `{
	"resume": {
		"name": "  Ada Lovelace ",
		"designation": "Analyst",
		"summary": "Wrote the first program.\r\nLoved engines.",
		"experience": [
			{"title": "Analyst", "company": "Engine Works", "period": "1842"},
			{"title": "", "company": ""}
		],
		"skills": {"items": [{"name": "Mathematics", "level": "Advanced"}]}
	},
	"theme": {"fontSizeLevel": 4},
	"order": ["experience", "summary", "skills"],
	"style": "professional"
}`

func writeInput(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ada.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadInputSanitizes(t *testing.T) {
	doc, err := readInput(writeInput(t, sampleInput))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", doc.Resume.Name)
	assert.Equal(t, "Wrote the first program.\nLoved engines.", doc.Resume.Summary)
	assert.Len(t, doc.Resume.Experience, 1, "空条目应被丢弃")
	assert.Equal(t, 4, doc.Theme.FontSizeLevel)
	assert.Equal(t, "professional", doc.Style)
}

func TestReadInputDefaultSample(t *testing.T) {
	doc, err := readInput("")
	require.NoError(t, err)
	assert.Equal(t, content.Default().Name, doc.Resume.Name)
}

func TestReadInputSchemaError(t *testing.T) {
	_, err := readInput(writeInput(t, `{"resume": {"experience": 3}}`))
	var verr *schemas.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestOpenSessionPrecedence(t *testing.T) {
	path := writeInput(t, sampleInput)
	c := config.Defaults()
	c.Order = []string{"contact"}

	s, err := openSession(path, c, "")
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, "professional", snap.Style.Name, "文档中的风格优先于配置")
	assert.Equal(t, "experience,summary,skills", snap.Order.String(), "文档中的顺序优先于配置")

	s, err = openSession(path, c, "elegant")
	require.NoError(t, err)
	assert.Equal(t, "elegant", s.Snapshot().Style.Name, "命令行参数优先")
}

func TestOpenSessionExplicitEmptyOrder(t *testing.T) {
	path := writeInput(t, `{"resume": {"summary": "hi"}, "order": []}`)
	s, err := openSession(path, config.Defaults(), "")
	require.NoError(t, err)
	assert.Empty(t, s.Plan().Sections)
}

// TestOpenSessionIgnoresUnknownOrderKeys 未知与重复的章节键被忽略，大小写不敏感。
func TestOpenSessionIgnoresUnknownOrderKeys(t *testing.T) {
	path := writeInput(t, `{"resume": {"summary": "x", "contact": "mail"}, "order": [" Summary", "photo", "summary", "contact"]}`)
	s, err := openSession(path, config.Defaults(), "")
	require.NoError(t, err)
	assert.Equal(t, "summary,contact", s.Order().String())

	plan := s.Plan()
	require.Len(t, plan.Sections, 2)
	assert.Equal(t, layout.SectionSummary, plan.Sections[0].Key)

	spec, err := pageSpec(s, config.Defaults())
	require.NoError(t, err)
	pages, _ := s.Export(spec)
	require.Len(t, pages, 1)
	assert.Len(t, pages[0].Sections, 2)
}

func TestReadInputRejectsBadThemeColor(t *testing.T) {
	_, err := readInput(writeInput(t, `{"resume": {}, "theme": {"primaryColor": "blue"}}`))
	assert.Error(t, err)

	doc, err := readInput(writeInput(t, `{"resume": {}, "theme": {"primaryColor": "#2563ebcc"}}`))
	require.NoError(t, err)
	assert.Equal(t, "#2563eb", doc.Theme.Primary().Hex())
}

func TestOpenSessionUnknownStyle(t *testing.T) {
	_, err := openSession("", config.Defaults(), "baroque")
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "x.pdf", outputPath("x.pdf", "in/ada.json", "out", ".pdf"))
	assert.Equal(t, filepath.Join("out", "ada.svg"), outputPath("", "in/ada.json", "out", ".svg"))
	assert.Equal(t, filepath.Join("out", "resume.pdf"), outputPath("", "", "out", ".pdf"))
}

func TestPageSpecLetter(t *testing.T) {
	s, err := openSession("", config.Defaults(), "")
	require.NoError(t, err)

	c := config.Defaults()
	c.Page = config.PageLetter
	spec, err := pageSpec(s, c)
	require.NoError(t, err)
	assert.Equal(t, config.LetterWidth, spec.Width)
	assert.Equal(t, config.LetterHeight, spec.Height)
	assert.Greater(t, spec.Margin.Top, 0.0)
}

func runCommand(t *testing.T, run func(*cobra.Command, []string) error, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, run(cmd, args))
	return buf.String()
}

func TestPlanCommandWritesJSON(t *testing.T) {
	cfg = config.Defaults()
	outFile = ""
	out := runCommand(t, runPlan, writeInput(t, sampleInput))

	var plan layout.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.NotEmpty(t, plan.Sections)
	assert.Equal(t, layout.SectionExperience, plan.Sections[0].Key)
}

func TestPaginateCommandWritesFile(t *testing.T) {
	cfg = config.Defaults()
	outFile = filepath.Join(t.TempDir(), "debug", "pages.json")
	t.Cleanup(func() { outFile = "" })
	runCommand(t, runPaginate)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var pages []layout.Page
	require.NoError(t, json.Unmarshal(data, &pages))
	assert.Len(t, pages, 1)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	cfg = config.Defaults()
	cfg.OutDir = dir
	debugFile = filepath.Join(dir, "plan.json")
	t.Cleanup(func() { debugFile = "" })

	out := runCommand(t, runRender, writeInput(t, sampleInput))
	assert.Contains(t, out, "ada.pdf")

	pdf, err := os.ReadFile(filepath.Join(dir, "ada.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	svg, err := os.ReadFile(filepath.Join(dir, "ada.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	_, err = os.Stat(debugFile)
	assert.NoError(t, err)
}

func TestStylesCommand(t *testing.T) {
	out := runCommand(t, runStyles)
	for _, name := range []string{"modern", "professional", "elegant"} {
		assert.Contains(t, out, name)
	}
}

func TestOrderCommand(t *testing.T) {
	cfg = config.Defaults()
	moveUp = "skills"
	t.Cleanup(func() { moveUp = "" })

	out := runCommand(t, runOrder, "summary,experience", "Skills", "photo")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "summary,skills,experience", lines[0])
	assert.Equal(t, "未包含（不会渲染）: projects,education,contact", lines[1])
}
