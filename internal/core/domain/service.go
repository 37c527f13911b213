package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ServiceType identifies the backend managing a service.
type ServiceType string

// ServiceTypeContainer is a service backed by a named container. It is currently the only variant.
const ServiceTypeContainer ServiceType = "container"

// ParseServiceType accepts the container variant under its known spellings.
func ParseServiceType(name string) (ServiceType, error) {
	switch strings.ToLower(name) {
	case "", "container", "docker", "dockercontainer":
		return ServiceTypeContainer, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidServiceType, "unsupported service type"), "service_type", name)
	}
}

// Service is an externally managed dependency a component needs while it runs.
type Service struct {
	Name      string
	Type      ServiceType
	Container string
}

// ContainerName returns the container identifier, defaulting to the service name.
func (s Service) ContainerName() string {
	if s.Container != "" {
		return s.Container
	}
	return s.Name
}
