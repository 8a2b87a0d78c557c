package session

import (
	"github.com/ByLCY/cvflow/layout"
	"github.com/ByLCY/cvflow/renderer"
)

// ExportTicket 标识一次导出请求。新的请求开始后，旧票据不再是当前的。
type ExportTicket struct {
	gen     uint64
	session *Session
}

// Generation 返回票据的序号。
func (t ExportTicket) Generation() uint64 { return t.gen }

// Current 判断该票据是否仍是最新的导出请求。过期票据的结果应直接丢弃。
func (t ExportTicket) Current() bool {
	return t.session != nil && t.session.generation.Load() == t.gen
}

// BeginExport 开始一次导出，之前发出的票据随即过期。
func (s *Session) BeginExport() ExportTicket {
	return ExportTicket{gen: s.generation.Add(1), session: s}
}

// Export 对当前快照分页。返回的票据用于在交付前判断结果是否已被取代。
func (s *Session) Export(spec layout.PageSpec) ([]layout.Page, ExportTicket) {
	ticket := s.BeginExport()
	snap := s.Snapshot()
	if spec.Width <= 0 || spec.Height <= 0 {
		spec = snap.PageSpec()
	}
	return snap.Paginate(spec), ticket
}

// ExportPDF 分页并渲染。若渲染期间有更新的导出请求，丢弃结果并返回 ErrSuperseded。
func (s *Session) ExportPDF(r renderer.PDFRenderer, spec layout.PageSpec) ([]byte, error) {
	ticket := s.BeginExport()
	snap := s.Snapshot()
	if spec.Width <= 0 || spec.Height <= 0 {
		spec = snap.PageSpec()
	}
	pages := snap.Paginate(spec)
	if !ticket.Current() {
		return nil, ErrSuperseded
	}
	data, err := r.RenderPDF(pages, snap.Meta())
	if err != nil {
		return nil, err
	}
	if !ticket.Current() {
		return nil, ErrSuperseded
	}
	return data, nil
}
