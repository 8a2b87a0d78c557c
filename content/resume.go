// Package content 定义简历内容模型，并把它归一化为排版引擎可测量的章节。
package content

// Mode 标记可重复章节当前以哪种形式为准。
type Mode string

const (
	// ModeStructured 表示结构化条目为准，扁平文本由格式化函数推导。
	ModeStructured Mode = "structured"
	// ModeFlattened 表示扁平文本被直接编辑过，在重新进入结构化编辑之前以文本为准。
	ModeFlattened Mode = "flattened"
)

// Repeatable 是同时持有结构化条目与扁平文本的章节。
// 两种形式不会同时被编辑：最后编辑的一方为准，另一方在下一次归一化时重新推导。
type Repeatable[T any] struct {
	Items []T    `json:"items" validate:"max=100,dive"`
	Text  string `json:"text,omitempty" validate:"max=20000"`
	Mode  Mode   `json:"mode,omitempty" validate:"omitempty,oneof=structured flattened"`
}

// Flattened 返回当前为准的扁平文本。
func (r Repeatable[T]) Flattened(format func([]T) string) string {
	if r.Mode == ModeFlattened {
		return r.Text
	}
	return format(r.Items)
}

// SetItems 以结构化条目为准，并同步推导扁平文本。
func (r *Repeatable[T]) SetItems(items []T, format func([]T) string) {
	r.Items = append([]T(nil), items...)
	r.Text = format(r.Items)
	r.Mode = ModeStructured
}

// SetText 以扁平文本为准。
func (r *Repeatable[T]) SetText(text string) {
	r.Text = text
	r.Mode = ModeFlattened
}

// Experience 是一条工作经历。Override 非空时表示该条目在画布上被直接编辑过，以其文本为准。
type Experience struct {
	Title       string `json:"title" validate:"max=200"`
	Company     string `json:"company" validate:"max=200"`
	Period      string `json:"period" validate:"max=100"`
	Location    string `json:"location" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
	Override    string `json:"override,omitempty" validate:"max=6000"`
}

// Project 是一个项目条目。
type Project struct {
	Title       string `json:"title" validate:"max=200"`
	TechStack   string `json:"techStack" validate:"max=300"`
	Description string `json:"description" validate:"max=5000"`
	Link        string `json:"link" validate:"max=500"`
}

// Education 是一条教育经历。
type Education struct {
	Degree      string `json:"degree" validate:"max=200"`
	Institution string `json:"institution" validate:"max=200"`
	Year        string `json:"year" validate:"max=100"`
	CGPA        string `json:"cgpa" validate:"max=50"`
	Details     string `json:"details" validate:"max=2000"`
}

// Skill 是一项技能及熟练程度。
type Skill struct {
	Name  string `json:"name" validate:"max=100"`
	Level string `json:"level" validate:"max=50"`
}

// Resume 是一份简历的全部内容。缺失的字段视为空。
type Resume struct {
	Name        string                `json:"name" validate:"max=200"`
	Designation string                `json:"designation" validate:"max=200"`
	Summary     string                `json:"summary" validate:"max=5000"`
	Contact     string                `json:"contact" validate:"max=2000"`
	Experience  []Experience          `json:"experience" validate:"max=100,dive"`
	Projects    Repeatable[Project]   `json:"projects"`
	Education   Repeatable[Education] `json:"education"`
	Skills      Repeatable[Skill]     `json:"skills"`
}

// Clone 返回深拷贝，供会话在编辑时生成新快照。
func (r Resume) Clone() Resume {
	out := r
	out.Experience = append([]Experience(nil), r.Experience...)
	out.Projects.Items = append([]Project(nil), r.Projects.Items...)
	out.Education.Items = append([]Education(nil), r.Education.Items...)
	out.Skills.Items = append([]Skill(nil), r.Skills.Items...)
	return out
}

// Sync 是一次归一化：结构化为准的章节重新推导扁平文本；
// 文本为准的技能章节按文本重新解析条目。项目与教育的文本无法无损解析，保持文本为准。
func (r *Resume) Sync() {
	if r.Projects.Mode != ModeFlattened {
		r.Projects.SetItems(r.Projects.Items, FormatProjects)
	}
	if r.Education.Mode != ModeFlattened {
		r.Education.SetItems(r.Education.Items, FormatEducation)
	}
	if r.Skills.Mode == ModeFlattened {
		r.Skills.Items = ParseSkills(r.Skills.Text)
	} else {
		r.Skills.SetItems(r.Skills.Items, FormatSkills)
	}
}

// Default 返回新建简历时使用的示例内容。
func Default() Resume {
	r := Resume{
		Name:        "Arnav Singh",
		Designation: "Frontend Developer",
		Summary:     "Passionate frontend developer skilled in React, TypeScript, and UI design. Experienced in building responsive, interactive applications.",
		Contact:     "arnav.singh@example.com\n+91 98765 43210\nwww.arnavportfolio.com",
		Experience: []Experience{{
			Title:       "Frontend Developer",
			Company:     "Coding Community",
			Period:      "2024–Present",
			Location:    "Mumbai, India",
			Description: "Built scalable UI with React and Tailwind CSS.\nIntegrated real-time APIs with Socket.IO.\nLed responsive design initiatives.",
		}},
	}
	r.Skills.SetItems([]Skill{
		{Name: "React", Level: "Advanced"},
		{Name: "TypeScript", Level: "Intermediate"},
	}, FormatSkills)
	r.Projects.SetItems([]Project{{
		Title:       "Resume Builder App",
		TechStack:   "React, Node.js",
		Description: "Built full MERN stack resume builder with live preview.",
	}}, FormatProjects)
	r.Education.SetItems([]Education{{
		Degree:      "B.E. in Computer Engineering",
		Institution: "TCET",
		Year:        "2022–2024",
		CGPA:        "8.5",
	}}, FormatEducation)
	return r
}
