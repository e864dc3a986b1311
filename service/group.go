package service

import (
	"errors"
	"fmt"
	"log"
)

// Group starts services in registration order and stops them in reverse
type Group struct {
	services []Service
	started  int
}

// Add registers s; services added after Start are not started
func (g *Group) Add(s Service) {
	g.services = append(g.services, s)
}

// Start starts every service; on the first failure the already started
// ones are stopped again and the error is returned
func (g *Group) Start() error {
	for i, s := range g.services[g.started:] {
		if err := s.Start(); err != nil {
			g.started += i
			g.Stop()
			return fmt.Errorf("start %s: %w", s.Name(), err)
		}
		log.Printf("[service] %s started", s.Name())
	}
	g.started = len(g.services)
	return nil
}

// StartOptional starts s and keeps it only on success
// Used for services the program can run without, like audio
func (g *Group) StartOptional(s Service) error {
	if err := s.Start(); err != nil {
		log.Printf("[service] %s unavailable: %v", s.Name(), err)
		return err
	}
	g.services = append(g.services[:g.started], append([]Service{s}, g.services[g.started:]...)...)
	g.started++
	return nil
}

// Stop stops started services in reverse order and joins their errors
func (g *Group) Stop() error {
	var errs []error
	for i := g.started - 1; i >= 0; i-- {
		s := g.services[i]
		if err := s.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", s.Name(), err))
		}
	}
	g.started = 0
	return errors.Join(errs...)
}
