// Package session 持有一份正在编辑的简历：内容、主题、章节顺序与风格。
// 画布与导出都从同一个会话取快照，因此使用同一份顺序与同一套度量。
package session

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ByLCY/cvflow/content"
	"github.com/ByLCY/cvflow/layout"
	"github.com/ByLCY/cvflow/renderer"
	"github.com/ByLCY/cvflow/theme"
)

var (
	// ErrUnknownField 表示编辑意图指向了不存在的字段。
	ErrUnknownField = errors.New("未知字段")
	// ErrSuperseded 表示导出完成前已有更新的导出请求。
	ErrSuperseded = errors.New("导出已被更新的请求取代")
)

var experienceField = regexp.MustCompile(`^experience\[(\d+)\]$`)

// Session 是单个编辑会话。所有方法可并发调用；排版结果每次重新计算，不在会话中缓存。
type Session struct {
	ID uuid.UUID

	mu      sync.RWMutex
	content content.Resume
	theme   theme.Config
	order   layout.Order
	style   layout.Style

	generation atomic.Uint64
}

// New 创建会话。未设置顺序时使用缺省顺序。
func New(r content.Resume, cfg theme.Config, order layout.Order, style layout.Style) *Session {
	if order.Len() == 0 {
		order = layout.DefaultOrder()
	}
	r = r.Clone()
	r.Sync()
	return &Session{
		ID:      uuid.New(),
		content: r,
		theme:   cfg.WithDefaults(),
		order:   order,
		style:   style,
	}
}

// Snapshot 是会话在某一时刻的不可变视图。
type Snapshot struct {
	Content content.Resume
	Theme   theme.Config
	Order   layout.Order
	Style   layout.Style
}

// Snapshot 返回当前状态的副本。
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Content: s.content.Clone(), Theme: s.theme, Order: s.order, Style: s.style}
}

// Document 组装排版输入。
func (snap Snapshot) Document() layout.Document {
	return content.Document(snap.Content, snap.Style)
}

// Plan 计算画布排版。
func (snap Snapshot) Plan() *layout.Plan {
	return layout.Build(snap.Document(), snap.Order, layout.NewTheme(snap.Theme), snap.Style)
}

// Paginate 计算导出分页。spec 为零值时使用风格的 A4 规格。
func (snap Snapshot) Paginate(spec layout.PageSpec) []layout.Page {
	return layout.Paginate(snap.Document(), snap.Order, layout.NewTheme(snap.Theme), snap.Style, spec)
}

// PageSpec 返回与画布一致的导出页面规格。
func (snap Snapshot) PageSpec() layout.PageSpec {
	return snap.Style.PageSpec(theme.Resolve(snap.Theme))
}

// Meta 返回导出文档的元数据。
func (snap Snapshot) Meta() renderer.Meta {
	return renderer.Meta{
		Title:    snap.Content.Name,
		Subject:  snap.Content.Designation,
		Keywords: snap.Order.Strings(),
		Author:   snap.Content.Name,
		Creator:  "cvflow",
	}
}

// Plan 基于当前状态计算画布排版。
func (s *Session) Plan() *layout.Plan {
	return s.Snapshot().Plan()
}

// Content 返回内容副本。
func (s *Session) Content() content.Resume {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content.Clone()
}

// Order 返回当前章节顺序。
func (s *Session) Order() layout.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order
}

// SetContent 整体替换内容。
func (s *Session) SetContent(r content.Resume) {
	r = r.Clone()
	r.Sync()
	s.mu.Lock()
	s.content = r
	s.mu.Unlock()
}

// SetTheme 替换主题，缺省字段取中间档位。
func (s *Session) SetTheme(cfg theme.Config) {
	s.mu.Lock()
	s.theme = cfg.WithDefaults()
	s.mu.Unlock()
}

// SetOrder 替换章节顺序。空顺序表示不渲染任何章节。
func (s *Session) SetOrder(o layout.Order) {
	s.mu.Lock()
	s.order = o
	s.mu.Unlock()
}

// SetStyle 切换视觉风格。
func (s *Session) SetStyle(style layout.Style) {
	s.mu.Lock()
	s.style = style
	s.mu.Unlock()
}

// MoveUp 把章节上移一位。
func (s *Session) MoveUp(key layout.SectionKey) layout.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order.MoveUp(key)
	return s.order
}

// MoveDown 把章节下移一位。
func (s *Session) MoveDown(key layout.SectionKey) layout.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order.MoveDown(key)
	return s.order
}

// update 在写锁内修改内容副本，成功后整体替换并重新归一化。
func (s *Session) update(fn func(r *content.Resume) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.content.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.Sync()
	s.content = next
	return nil
}

// ApplyEdit 把画布上的编辑回写到内容模型。field 为 TextRun.Field。
// 可重复章节的文本编辑使该章节以文本为准；单条经历的编辑只影响该条目。
func (s *Session) ApplyEdit(field, value string) error {
	return s.update(func(r *content.Resume) error {
		switch field {
		case "name":
			r.Name = value
		case "designation":
			r.Designation = value
		case "summary":
			r.Summary = value
		case "contact":
			r.Contact = value
		case "projects":
			r.Projects.SetText(value)
		case "education":
			r.Education.SetText(value)
		case "skills":
			r.Skills.SetText(value)
		default:
			m := experienceField.FindStringSubmatch(field)
			if m == nil {
				return fmt.Errorf("%w: %s", ErrUnknownField, field)
			}
			i, err := strconv.Atoi(m[1])
			if err != nil || i >= len(r.Experience) {
				return fmt.Errorf("%w: %s", ErrUnknownField, field)
			}
			e := r.Experience[i]
			e.Override = ""
			if value != content.FormatExperience(e) {
				e.Override = value
			}
			r.Experience[i] = e
		}
		return nil
	})
}

// SetExperience 以结构化方式修改一条经历，清除画布上的直接编辑。
func (s *Session) SetExperience(i int, e content.Experience) error {
	return s.update(func(r *content.Resume) error {
		if i < 0 || i >= len(r.Experience) {
			return fmt.Errorf("%w: %s", ErrUnknownField, content.ExperienceField(i))
		}
		e.Override = ""
		r.Experience[i] = e
		return nil
	})
}

// AddExperience 追加一条经历。
func (s *Session) AddExperience(e content.Experience) {
	_ = s.update(func(r *content.Resume) error {
		r.Experience = append(r.Experience, e)
		return nil
	})
}

// RemoveExperience 删除一条经历。
func (s *Session) RemoveExperience(i int) error {
	return s.update(func(r *content.Resume) error {
		if i < 0 || i >= len(r.Experience) {
			return fmt.Errorf("%w: %s", ErrUnknownField, content.ExperienceField(i))
		}
		r.Experience = append(r.Experience[:i], r.Experience[i+1:]...)
		return nil
	})
}

// SetProjects 以结构化条目为准重写项目章节。
func (s *Session) SetProjects(items []content.Project) {
	_ = s.update(func(r *content.Resume) error {
		r.Projects.SetItems(items, content.FormatProjects)
		return nil
	})
}

// SetEducation 以结构化条目为准重写教育章节。
func (s *Session) SetEducation(items []content.Education) {
	_ = s.update(func(r *content.Resume) error {
		r.Education.SetItems(items, content.FormatEducation)
		return nil
	})
}

// SetSkills 以结构化条目为准重写技能章节。
func (s *Session) SetSkills(items []content.Skill) {
	_ = s.update(func(r *content.Resume) error {
		r.Skills.SetItems(items, content.FormatSkills)
		return nil
	})
}
