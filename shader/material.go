package shader

// Material pairs a shader with uniform values. Values start from the
// shader's reflected defaults.
type Material struct {
	shader *Shader
	values map[string]any
	// extra holds names set by the caller that reflection did not find,
	// in first-set order.
	extra []string
}

// NewMaterial creates a material seeded from s's uniform defaults.
// For duplicate uniform names the first declaration wins.
func NewMaterial(s *Shader) *Material {
	m := &Material{shader: s, values: make(map[string]any)}
	for _, u := range s.uniforms {
		if _, ok := m.values[u.Name]; ok || u.Default == nil {
			continue
		}
		m.values[u.Name] = u.Default
	}
	return m
}

// Shader returns the material's shader.
func (m *Material) Shader() *Shader { return m.shader }

// Set stores a value for name. The value is uploaded by Apply.
func (m *Material) Set(name string, v any) {
	if _, ok := m.values[name]; !ok {
		if _, reflected := m.shader.Uniform(name); !reflected {
			m.extra = append(m.extra, name)
		}
	}
	m.values[name] = v
}

// Value returns the stored value for name.
func (m *Material) Value(name string) (any, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Apply activates the shader and uploads every value: reflected uniforms
// in table order, then caller-set extras. It returns the first error from
// Shader.Set and keeps uploading the remaining values.
func (m *Material) Apply() error {
	m.shader.Use()

	var first error
	seen := make(map[string]bool, len(m.values))
	upload := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		v, ok := m.values[name]
		if !ok {
			return
		}
		if err := m.shader.Set(name, v); err != nil && first == nil {
			first = err
		}
	}
	for _, u := range m.shader.uniforms {
		upload(u.Name)
	}
	for _, name := range m.extra {
		upload(name)
	}
	return first
}
