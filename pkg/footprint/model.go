package footprint

// Model references a 3D model file with its placement triplets. Models
// are emitted at the very end of the footprint.
type Model struct {
	BaseNode

	Path   string
	Offset [3]float64
	Scale  [3]float64
	Rotate [3]float64
}

// NewModel creates a model reference with unit scale and no offset or
// rotation.
func NewModel(path string) *Model {
	m := &Model{Path: path, Scale: [3]float64{1, 1, 1}}
	m.bind(m, "Model")
	return m
}

func (m *Model) contentID() *identity {
	return newIdentity(m.kind).
		str("path", m.Path).
		floats("offset", m.Offset[:]).
		floats("scale", m.Scale[:]).
		floats("rotate", m.Rotate[:])
}

// Copy returns a deep copy with the parent cleared.
func (m *Model) Copy() Node {
	c := NewModel(m.Path)
	c.Offset, c.Scale, c.Rotate = m.Offset, m.Scale, m.Rotate
	m.copyInto(c)
	return c
}
