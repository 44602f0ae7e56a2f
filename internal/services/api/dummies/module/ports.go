package module

import "dashkit/internal/services/api/dummies/domain"

// Ports is what dummies exposes to other modules
type Ports struct {
	Service domain.ServicePort
}

// Ports implements modkit.Module
func (m *Module) Ports() any { return Ports{Service: m.svc} }
