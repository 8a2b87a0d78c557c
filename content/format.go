package content

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultSkillLevel 是解析技能文本时缺省的熟练程度。
const DefaultSkillLevel = "Intermediate"

var skillPattern = regexp.MustCompile(`^(.*)\((.*)\)$`)

// FormatExperience 把一条经历格式化为块文本：
// "{title} - {company} ({period})\n{location}\n{description}"，空字段连同分隔符一起省略。
func FormatExperience(e Experience) string {
	if strings.TrimSpace(e.Override) != "" {
		return e.Override
	}
	head := strings.TrimSpace(e.Title)
	if c := strings.TrimSpace(e.Company); c != "" {
		head = joinNonEmpty(" - ", head, c)
	}
	if p := strings.TrimSpace(e.Period); p != "" {
		head = joinNonEmpty(" ", head, "("+p+")")
	}
	return joinNonEmpty("\n", head, strings.TrimSpace(e.Location), strings.TrimRight(e.Description, " \t\n"))
}

// FormatExperienceList 把全部经历以空行连接。
func FormatExperienceList(items []Experience) string {
	parts := make([]string, 0, len(items))
	for _, e := range items {
		parts = append(parts, FormatExperience(e))
	}
	return joinNonEmpty("\n\n", parts...)
}

// FormatProjects 格式化项目列表："{title} | {techStack}\n{description}\n{link}"，条目之间空一行。
func FormatProjects(items []Project) string {
	parts := make([]string, 0, len(items))
	for _, p := range items {
		head := joinNonEmpty(" | ", strings.TrimSpace(p.Title), strings.TrimSpace(p.TechStack))
		parts = append(parts, joinNonEmpty("\n", head, strings.TrimRight(p.Description, " \t\n"), strings.TrimSpace(p.Link)))
	}
	return joinNonEmpty("\n\n", parts...)
}

// FormatEducation 格式化教育经历："{degree}\n{institution} ({year})\nCGPA: {cgpa}\n{details}"。
func FormatEducation(items []Education) string {
	parts := make([]string, 0, len(items))
	for _, e := range items {
		inst := strings.TrimSpace(e.Institution)
		if y := strings.TrimSpace(e.Year); y != "" {
			inst = joinNonEmpty(" ", inst, "("+y+")")
		}
		var cgpa string
		if g := strings.TrimSpace(e.CGPA); g != "" {
			cgpa = "CGPA: " + g
		}
		parts = append(parts, joinNonEmpty("\n", strings.TrimSpace(e.Degree), inst, cgpa, strings.TrimRight(e.Details, " \t\n")))
	}
	return joinNonEmpty("\n\n", parts...)
}

// FormatSkills 格式化技能："{name} ({level})"，以 ", " 连接。
func FormatSkills(items []Skill) string {
	parts := make([]string, 0, len(items))
	for _, s := range items {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		if lvl := strings.TrimSpace(s.Level); lvl != "" {
			name = fmt.Sprintf("%s (%s)", name, lvl)
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}

// ParseSkills 解析 "React (Advanced), Go" 形式的技能文本，缺少程度时取 DefaultSkillLevel。
func ParseSkills(text string) []Skill {
	var out []Skill
	for _, raw := range splitTopLevel(text) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		s := Skill{Name: raw, Level: DefaultSkillLevel}
		if m := skillPattern.FindStringSubmatch(raw); m != nil {
			s.Name = strings.TrimSpace(m[1])
			if lvl := strings.TrimSpace(m[2]); lvl != "" {
				s.Level = lvl
			}
		}
		if s.Name == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// splitTopLevel 按括号外的逗号切分，括号内的逗号属于程度说明。
func splitTopLevel(text string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, text[start:])
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
