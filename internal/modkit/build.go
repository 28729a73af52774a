package modkit

import (
	"net/http"

	phttp "solna/internal/platform/net/http"
	str "solna/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies Option funcs and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   str.MustPrefix(c.prefix),
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Base implements Module from a Built and the module's own route registration
// modules return it so MountRoutes stays identical everywhere
type Base struct {
	b     Built
	own   func(phttp.Router)
	ports any
}

// NewBase pairs the built options with the module's registration
// ports from WithPorts win over the module's defaults
func NewBase(b Built, ports any, own func(phttp.Router)) *Base {
	if b.Ports != nil {
		ports = b.Ports
	}
	if b.Register == nil {
		b.Register = func(phttp.Router) {}
	}
	return &Base{b: b, own: own, ports: ports}
}

// MountRoutes mounts the module under its prefix, or in a group at the root
func (m *Base) MountRoutes(r phttp.Router) {
	mount := func(rr phttp.Router) {
		if len(m.b.Mw) > 0 {
			rr.Use(m.b.Mw...)
		}
		if m.own != nil {
			m.own(rr)
		}
		m.b.Register(rr)
	}
	if m.b.Prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(m.b.Prefix, mount)
}

// Name implements Module
func (m *Base) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the normalized mount prefix, "" for the root
func (m *Base) Prefix() string { return m.b.Prefix }

// Ports implements Module
func (m *Base) Ports() any { return m.ports }
