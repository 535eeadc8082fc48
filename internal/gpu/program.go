//go:build !nogpu

package gpu

import "github.com/gogpu/wgpu/hal"

// pipelineSetter is the part of hal.RenderPassEncoder a programScope needs.
type pipelineSetter interface {
	SetPipeline(pipeline hal.RenderPipeline)
}

// programScope tracks which pipeline is active on a render pass so a draw
// can switch to its own program and put the previous one back afterwards.
//
//	release := scope.bind(p)
//	defer release()
type programScope struct {
	pass    pipelineSetter
	current hal.RenderPipeline
}

func newProgramScope(pass pipelineSetter) *programScope {
	return &programScope{pass: pass}
}

// bind makes p the active pipeline and returns a func restoring the
// pipeline that was active before. Rebinding the active pipeline issues no
// pass command.
func (s *programScope) bind(p hal.RenderPipeline) (release func()) {
	prev := s.current
	if p != prev {
		s.pass.SetPipeline(p)
		s.current = p
	}
	return func() {
		if s.current == prev {
			return
		}
		s.current = prev
		if prev != nil {
			s.pass.SetPipeline(prev)
		}
	}
}
