package hsm

import (
	"fmt"

	"github.com/aretw0/hsm/pkg/domain"
)

// violation reports a broken usage contract. In strict mode it panics with err so that
// the failure surfaces at the offending call; otherwise it is logged and execution continues.
func (m *Machine[O]) violation(err error) {
	if m.cfg.strict {
		panic(err)
	}
	m.cfg.sink.LogError(m, err.Error())
}

// checkEnterArgs verifies that the supplied arguments match the entry interface of s.
func (m *Machine[O]) checkEnterArgs(id domain.StateID, s State[O], hasArgs bool) {
	_, plain := s.(Enterer)
	_, withArgs := s.(ArgsEnterer)
	switch {
	case hasArgs && !withArgs:
		m.violation(fmt.Errorf("%w: state %s takes no arguments", domain.ErrArgsMismatch, id))
	case !hasArgs && withArgs && !plain:
		m.violation(fmt.Errorf("%w: state %s requires arguments", domain.ErrArgsMismatch, id))
	}
}
