package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState is the introspection snapshot of a Service.
type ServiceState struct {
	RepositoryType string `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	repoType := "unknown"
	if comp, ok := s.repo.(introspection.Component); ok {
		repoType = comp.ComponentType()
	} else if s.repo != nil {
		repoType = "repository"
	}

	return ServiceState{RepositoryType: repoType}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
