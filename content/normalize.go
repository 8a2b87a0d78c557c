package content

import (
	"fmt"

	"github.com/ByLCY/cvflow/layout"
)

// ExperienceField 返回第 i 条经历的字段标识。
func ExperienceField(i int) string {
	return fmt.Sprintf("experience[%d]", i)
}

// Normalize 把简历内容转换为排版章节：标题与栏位取自风格。
// 工作经历每个条目一个块（分页与块间距的最小单元），其余章节各为一个块。
// 块的字段标识即编辑时回写的字段。
func Normalize(r Resume, style layout.Style) layout.Sections {
	out := make(layout.Sections, len(layout.CanonicalSections))
	put := func(key layout.SectionKey, text string, blocks []layout.Block) {
		spec := style.SlotFor(key)
		if blocks == nil {
			blocks = []layout.Block{{Field: string(key), Text: text}}
		}
		out[key] = layout.Section{Key: key, Title: spec.Title, Slot: spec.Slot, Text: text, Blocks: blocks}
	}

	put(layout.SectionSummary, r.Summary, nil)

	var blocks []layout.Block
	for i, e := range r.Experience {
		text := FormatExperience(e)
		if layout.IsBlank(text) {
			continue
		}
		blocks = append(blocks, layout.Block{Field: ExperienceField(i), Text: text})
	}
	if blocks == nil {
		blocks = []layout.Block{}
	}
	put(layout.SectionExperience, FormatExperienceList(r.Experience), blocks)

	put(layout.SectionProjects, r.Projects.Flattened(FormatProjects), nil)
	put(layout.SectionSkills, r.Skills.Flattened(FormatSkills), nil)
	put(layout.SectionEducation, r.Education.Flattened(FormatEducation), nil)
	put(layout.SectionContact, r.Contact, nil)
	return out
}

// Fields 返回页眉模板可引用的字段。
func (r Resume) Fields() map[string]string {
	return map[string]string{
		"name":        r.Name,
		"designation": r.Designation,
		"summary":     r.Summary,
		"contact":     r.Contact,
		"experience":  FormatExperienceList(r.Experience),
		"projects":    r.Projects.Flattened(FormatProjects),
		"skills":      r.Skills.Flattened(FormatSkills),
		"education":   r.Education.Flattened(FormatEducation),
	}
}

// Document 组装排版引擎的完整输入。
func Document(r Resume, style layout.Style) layout.Document {
	return layout.Document{Fields: r.Fields(), Sections: Normalize(r, style)}
}
