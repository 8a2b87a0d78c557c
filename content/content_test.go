package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/cvflow/layout"
)

func TestFormatExperience(t *testing.T) {
	e := Experience{Title: "Engineer", Company: "Acme", Period: "2020–2022", Location: "Berlin", Description: "Built things."}
	assert.Equal(t, "Engineer - Acme (2020–2022)\nBerlin\nBuilt things.", FormatExperience(e))

	// 空字段连同分隔符省略
	assert.Equal(t, "Engineer\nBuilt things.", FormatExperience(Experience{Title: "Engineer", Description: "Built things."}))
	assert.Equal(t, "", FormatExperience(Experience{}))

	e.Override = "edited on canvas"
	assert.Equal(t, "edited on canvas", FormatExperience(e))
}

func TestFormatSkillsAndParse(t *testing.T) {
	items := []Skill{{Name: "React", Level: "Advanced"}, {Name: "Go"}, {Name: "  "}}
	assert.Equal(t, "React (Advanced), Go", FormatSkills(items))

	parsed := ParseSkills("React (Advanced), Go,, TypeScript ( Expert ) , ()")
	assert.Equal(t, []Skill{
		{Name: "React", Level: "Advanced"},
		{Name: "Go", Level: DefaultSkillLevel},
		{Name: "TypeScript", Level: "Expert"},
	}, parsed)
	assert.Nil(t, ParseSkills("   "))
}

func TestParseSkillsCommaInsideLevel(t *testing.T) {
	parsed := ParseSkills("Go (Advanced, 5 yrs), Rust, SQL (Basic")
	assert.Equal(t, []Skill{
		{Name: "Go", Level: "Advanced, 5 yrs"},
		{Name: "Rust", Level: DefaultSkillLevel},
		{Name: "SQL (Basic", Level: DefaultSkillLevel},
	}, parsed)
}

func TestFormatProjectsAndEducation(t *testing.T) {
	projects := []Project{
		{Title: "Resume Builder", TechStack: "Go", Description: "Layout engine."},
		{Title: "CLI", Link: "https://example.org"},
	}
	assert.Equal(t, "Resume Builder | Go\nLayout engine.\n\nCLI\nhttps://example.org", FormatProjects(projects))

	edu := []Education{{Degree: "B.E.", Institution: "TCET", Year: "2024", CGPA: "8.5"}}
	assert.Equal(t, "B.E.\nTCET (2024)\nCGPA: 8.5", FormatEducation(edu))
	assert.Equal(t, "", FormatEducation(nil))
}

// TestRepeatableAuthority 最后编辑的形式为准。
func TestRepeatableAuthority(t *testing.T) {
	var r Repeatable[Skill]
	r.SetItems([]Skill{{Name: "Go", Level: "Expert"}}, FormatSkills)
	assert.Equal(t, ModeStructured, r.Mode)
	assert.Equal(t, "Go (Expert)", r.Flattened(FormatSkills))

	r.SetText("Rust (Beginner)")
	assert.Equal(t, "Rust (Beginner)", r.Flattened(FormatSkills))

	r.SetItems([]Skill{{Name: "Zig", Level: "Beginner"}}, FormatSkills)
	assert.Equal(t, "Zig (Beginner)", r.Text)
}

func TestSyncRederives(t *testing.T) {
	r := Default()
	r.Projects.Items[0].Title = "Renamed"
	r.Skills.SetText("Go (Expert), SQL")
	r.Sync()

	assert.True(t, strings.HasPrefix(r.Projects.Text, "Renamed |"))
	assert.Equal(t, []Skill{{Name: "Go", Level: "Expert"}, {Name: "SQL", Level: DefaultSkillLevel}}, r.Skills.Items)
	assert.Equal(t, ModeFlattened, r.Skills.Mode)
}

func TestNormalizeKeepsExperienceBlocks(t *testing.T) {
	r := Default()
	r.Experience = append(r.Experience, Experience{}, Experience{Title: "Intern", Company: "Lab"})
	secs := Normalize(r, layout.DefaultStyle())

	exp := secs[layout.SectionExperience]
	require.Len(t, exp.Blocks, 2)
	assert.Equal(t, "experience[0]", exp.Blocks[0].Field)
	// 空条目被跳过，但字段标识保持原始下标
	assert.Equal(t, "experience[2]", exp.Blocks[1].Field)
	assert.Equal(t, "EXPERIENCE", exp.Title)
	assert.Equal(t, layout.SlotLeft, exp.Slot)

	skills := secs[layout.SectionSkills]
	require.Len(t, skills.Blocks, 1)
	assert.Equal(t, "skills", skills.Blocks[0].Field)
	assert.Equal(t, "React (Advanced), TypeScript (Intermediate)", skills.Text)

	assert.Equal(t, layout.SlotRight, secs[layout.SectionContact].Slot)
}

func TestNormalizeEmptySectionsAreEmpty(t *testing.T) {
	secs := Normalize(Resume{Name: "Only Name"}, layout.DefaultStyle())
	for _, key := range layout.CanonicalSections {
		assert.True(t, secs[key].Empty(), "章节 %s 应为空", key)
	}
}

func TestDocumentFields(t *testing.T) {
	doc := Document(Default(), layout.DefaultStyle())
	assert.Equal(t, "Arnav Singh", doc.Fields["name"])
	assert.Equal(t, "Frontend Developer", doc.Fields["designation"])
	assert.Len(t, doc.Sections, len(layout.CanonicalSections))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	r := Default()
	r.Name = strings.Repeat("x", 300)
	r.Skills.Mode = "mixed"
	err := r.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	var fields []string
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "Resume.Name")
	assert.Contains(t, fields, "Resume.Skills.Mode")
}

func TestSanitize(t *testing.T) {
	r := Resume{
		Name:       "  Ada \r\n",
		Experience: []Experience{{}, {Title: " Engineer "}},
	}
	r.Skills.Items = []Skill{{Name: " "}, {Name: " Go ", Level: " Expert "}}
	out := Sanitize(r)

	assert.Equal(t, "Ada", out.Name)
	require.Len(t, out.Experience, 1)
	assert.Equal(t, "Engineer", out.Experience[0].Title)
	assert.Equal(t, []Skill{{Name: "Go", Level: "Expert"}}, out.Skills.Items)
	// 输入不被修改
	assert.Len(t, r.Experience, 2)
	assert.Equal(t, " Go ", r.Skills.Items[1].Name)
}
