// Package schema holds the column registry for a table.
//
// A Schema is the ordered list of property names a table displays, plus the
// optional metadata attached to them:
//
//   - a bijective header map (property <-> display title)
//   - per-property sort order chains (tie-break properties)
//   - per-property display width and display transform name
//
// Width and transform are display-only; the filter and sort engines never
// consult them. A Schema is validated once by New and is immutable after.
package schema

// Column describes a single declared property.
type Column struct {
	// Name is the property name used to look values up on records.
	Name string

	// Title is the display header. Empty when no header map was given.
	Title string

	// Width is the preferred display width in cells. Zero means automatic.
	Width int

	// Format names a display transform applied by the renderer.
	Format string
}

// Schema is an immutable, validated column registry.
type Schema struct {
	columns   []Column
	index     map[string]int
	byTitle   map[string]string
	sortOrder map[string][]string
}

// Option configures schema construction.
type Option func(*builder)

type builder struct {
	headers   map[string]string
	sortOrder map[string][]string
	widths    map[string]int
	formats   map[string]string
}

// WithHeaders sets the property -> title map.
// The map must cover every property with unique titles.
func WithHeaders(headers map[string]string) Option {
	return func(b *builder) {
		b.headers = headers
	}
}

// WithSortOrder sets the tie-break chain used when sorting by property.
func WithSortOrder(property string, chain ...string) Option {
	return func(b *builder) {
		if b.sortOrder == nil {
			b.sortOrder = make(map[string][]string)
		}
		b.sortOrder[property] = append([]string(nil), chain...)
	}
}

// WithWidth sets a preferred display width for a property.
func WithWidth(property string, width int) Option {
	return func(b *builder) {
		if b.widths == nil {
			b.widths = make(map[string]int)
		}
		b.widths[property] = width
	}
}

// WithFormat names the display transform for a property.
func WithFormat(property, transform string) Option {
	return func(b *builder) {
		if b.formats == nil {
			b.formats = make(map[string]string)
		}
		b.formats[property] = transform
	}
}

// New validates and builds a schema.
func New(properties []string, opts ...Option) (*Schema, error) {
	var b builder
	for _, opt := range opts {
		opt(&b)
	}

	if len(properties) == 0 {
		return nil, ErrNoProperties
	}

	s := &Schema{
		columns:   make([]Column, 0, len(properties)),
		index:     make(map[string]int, len(properties)),
		sortOrder: make(map[string][]string),
	}

	for _, name := range properties {
		if name == "" {
			return nil, &ValidationError{Section: "properties", Name: name, Err: ErrEmptyProperty}
		}
		if _, dup := s.index[name]; dup {
			return nil, &ValidationError{Section: "properties", Name: name, Err: ErrDuplicateProperty}
		}
		s.index[name] = len(s.columns)
		s.columns = append(s.columns, Column{Name: name})
	}

	if err := s.applyHeaders(b.headers); err != nil {
		return nil, err
	}

	for property, chain := range b.sortOrder {
		if !s.Has(property) {
			return nil, &ValidationError{Section: "sortOrder", Name: property, Err: ErrUnknownProperty}
		}
		for _, tie := range chain {
			if !s.Has(tie) {
				return nil, &ValidationError{Section: "sortOrder", Name: tie, Err: ErrUnknownProperty}
			}
		}
		s.sortOrder[property] = chain
	}

	for property, width := range b.widths {
		i, ok := s.index[property]
		if !ok {
			return nil, &ValidationError{Section: "widths", Name: property, Err: ErrUnknownProperty}
		}
		s.columns[i].Width = width
	}

	for property, transform := range b.formats {
		i, ok := s.index[property]
		if !ok {
			return nil, &ValidationError{Section: "formats", Name: property, Err: ErrUnknownProperty}
		}
		s.columns[i].Format = transform
	}

	return s, nil
}

func (s *Schema) applyHeaders(headers map[string]string) error {
	if headers == nil {
		return nil
	}

	s.byTitle = make(map[string]string, len(headers))
	for property, title := range headers {
		i, ok := s.index[property]
		if !ok {
			return &ValidationError{Section: "headers", Name: property, Err: ErrUnknownProperty}
		}
		if _, dup := s.byTitle[title]; dup {
			return &ValidationError{Section: "headers", Name: title, Err: ErrHeaderMismatch}
		}
		s.byTitle[title] = property
		s.columns[i].Title = title
	}
	if len(s.byTitle) != len(s.columns) {
		for _, c := range s.columns {
			if c.Title == "" {
				return &ValidationError{Section: "headers", Name: c.Name, Err: ErrHeaderMismatch}
			}
		}
	}
	return nil
}

// Len returns the number of properties.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Properties returns the ordered property names.
func (s *Schema) Properties() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns a copy of the column descriptors in order.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Column returns the descriptor for a property.
func (s *Schema) Column(property string) (Column, bool) {
	i, ok := s.index[property]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Has returns true if the property is declared.
func (s *Schema) Has(property string) bool {
	_, ok := s.index[property]
	return ok
}

// Index returns the position of a property, or -1.
func (s *Schema) Index(property string) int {
	if i, ok := s.index[property]; ok {
		return i
	}
	return -1
}

// HasHeaders returns true if a header map was configured.
func (s *Schema) HasHeaders() bool {
	return s.byTitle != nil
}

// Title returns the display title for a property.
// Falls back to the property name when no header map exists.
func (s *Schema) Title(property string) string {
	if i, ok := s.index[property]; ok && s.columns[i].Title != "" {
		return s.columns[i].Title
	}
	return property
}

// PropertyForTitle resolves a display title back to its property.
func (s *Schema) PropertyForTitle(title string) (string, bool) {
	p, ok := s.byTitle[title]
	return p, ok
}

// Resolve accepts either a property name or a display title.
func (s *Schema) Resolve(name string) (string, bool) {
	if s.Has(name) {
		return name, true
	}
	return s.PropertyForTitle(name)
}

// SortOrder returns the tie-break chain configured for a property.
// The returned slice must not be modified.
func (s *Schema) SortOrder(property string) []string {
	return s.sortOrder[property]
}
