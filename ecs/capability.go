package ecs

import (
	"fmt"
	"math/bits"
	"strings"
	"sync"
)

// MaxCapabilities is the number of distinct capabilities a process can register.
const MaxCapabilities = 64

// Capability identifies a named behavioral role a component fulfils,
// such as "camera" or "renderable".
type Capability uint8

// CapabilitySet is a bitmask of capabilities.
type CapabilitySet uint64

var capabilities = struct {
	mu     sync.Mutex
	names  []string
	byName map[string]Capability
}{byName: make(map[string]Capability)}

// RegisterCapability returns the capability registered under name,
// allocating it on first use. Systems call it from package-level var
// declarations so ids are fixed before any component is attached.
// It panics when more than MaxCapabilities names are registered.
func RegisterCapability(name string) Capability {
	capabilities.mu.Lock()
	defer capabilities.mu.Unlock()

	if c, ok := capabilities.byName[name]; ok {
		return c
	}
	if len(capabilities.names) >= MaxCapabilities {
		panic(fmt.Errorf("%w: registering %q", ErrTooManyCapabilities, name))
	}
	c := Capability(len(capabilities.names))
	capabilities.names = append(capabilities.names, name)
	capabilities.byName[name] = c
	return c
}

// String returns the registered name.
func (c Capability) String() string {
	capabilities.mu.Lock()
	defer capabilities.mu.Unlock()
	if int(c) < len(capabilities.names) {
		return capabilities.names[c]
	}
	return fmt.Sprintf("capability(%d)", uint8(c))
}

// Set returns a set containing only c.
func (c Capability) Set() CapabilitySet {
	return 1 << c
}

// Capabilities builds a set from a list of capabilities.
func Capabilities(cs ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range cs {
		s |= c.Set()
	}
	return s
}

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	return s&c.Set() != 0
}

// ContainsAll reports whether every capability in other is in s.
func (s CapabilitySet) ContainsAll(other CapabilitySet) bool {
	return s&other == other
}

// With returns s with c added.
func (s CapabilitySet) With(c Capability) CapabilitySet {
	return s | c.Set()
}

// Count returns the number of capabilities in the set.
func (s CapabilitySet) Count() int {
	return bits.OnesCount64(uint64(s))
}

// String lists the capability names, e.g. "{camera,renderable}".
func (s CapabilitySet) String() string {
	var names []string
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		names = append(names, Capability(bits.TrailingZeros64(rest)).String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
