package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError 描述一个未通过校验的字段。
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// ValidationError 汇总内容校验失败的字段。
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "简历内容校验失败"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Param != "" {
			parts = append(parts, fmt.Sprintf("%s(%s=%s)", f.Field, f.Tag, f.Param))
		} else {
			parts = append(parts, fmt.Sprintf("%s(%s)", f.Field, f.Tag))
		}
	}
	return "简历内容校验失败: " + strings.Join(parts, ", ")
}

// Validate 检查字段长度与条目数量上限。
func (r Resume) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("简历内容校验失败: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Namespace(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// Sanitize 清理导入的内容：统一换行、去除首尾空白，并丢弃完全为空的结构化条目。
func Sanitize(r Resume) Resume {
	out := r.Clone()
	out.Name = clean(out.Name)
	out.Designation = clean(out.Designation)
	out.Summary = clean(out.Summary)
	out.Contact = clean(out.Contact)

	exp := out.Experience[:0]
	for _, e := range out.Experience {
		e = Experience{
			Title:       clean(e.Title),
			Company:     clean(e.Company),
			Period:      clean(e.Period),
			Location:    clean(e.Location),
			Description: clean(e.Description),
			Override:    clean(e.Override),
		}
		if e != (Experience{}) {
			exp = append(exp, e)
		}
	}
	out.Experience = exp

	projects := out.Projects.Items[:0]
	for _, p := range out.Projects.Items {
		p = Project{Title: clean(p.Title), TechStack: clean(p.TechStack), Description: clean(p.Description), Link: clean(p.Link)}
		if p != (Project{}) {
			projects = append(projects, p)
		}
	}
	out.Projects.Items = projects
	out.Projects.Text = clean(out.Projects.Text)

	education := out.Education.Items[:0]
	for _, e := range out.Education.Items {
		e = Education{Degree: clean(e.Degree), Institution: clean(e.Institution), Year: clean(e.Year), CGPA: clean(e.CGPA), Details: clean(e.Details)}
		if e != (Education{}) {
			education = append(education, e)
		}
	}
	out.Education.Items = education
	out.Education.Text = clean(out.Education.Text)

	skills := out.Skills.Items[:0]
	for _, s := range out.Skills.Items {
		s = Skill{Name: clean(s.Name), Level: clean(s.Level)}
		if s.Name != "" {
			skills = append(skills, s)
		}
	}
	out.Skills.Items = skills
	out.Skills.Text = clean(out.Skills.Text)
	return out
}

func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}
