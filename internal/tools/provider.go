// Package tools implements the built-in sp.* tool providers.
//
// Each provider is a small struct receiving its dependencies via its
// constructor (DIP) and registering one descriptor/handler pair with
// the registry. Registration happens in a single explicit phase driven
// by the composition root — there are no import-time side effects.
package tools

import "github.com/cdw0424/super-prompt/internal/tool"

// Provider registers one or more tools with a registry during the
// startup registration phase.
type Provider interface {
	Register(reg *tool.Registry) error
}

// RegisterAll runs every provider's registration, stopping at the
// first failure.
func RegisterAll(reg *tool.Registry, providers ...Provider) error {
	for _, p := range providers {
		if err := p.Register(reg); err != nil {
			return err
		}
	}
	return nil
}
