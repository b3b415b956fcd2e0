package raster

// Metadata is the auxiliary, side-channel description of a raster. It is not
// part of the serialized object; the driver persists it next to the file.
type Metadata struct {
	Description string                       `yaml:"description,omitempty"`
	Domains     map[string]map[string]string `yaml:"domains,omitempty"`
	Bands       []BandMetadata               `yaml:"bands,omitempty"`
}

// BandMetadata describes one band.
type BandMetadata struct {
	Description string   `yaml:"description,omitempty"`
	Unit        string   `yaml:"unit,omitempty"`
	NoData      *float64 `yaml:"nodata,omitempty"`
	Scale       *float64 `yaml:"scale,omitempty"`
	Offset      *float64 `yaml:"offset,omitempty"`
}

// IsEmpty reports whether m carries nothing worth persisting.
func (m Metadata) IsEmpty() bool {
	if m.Description != "" {
		return false
	}
	for _, items := range m.Domains {
		if len(items) > 0 {
			return false
		}
	}
	for _, b := range m.Bands {
		if !b.isEmpty() {
			return false
		}
	}

	return true
}

// Item returns the value of key in domain; the default domain is "".
func (m Metadata) Item(domain, key string) (string, bool) {
	v, ok := m.Domains[domain][key]
	return v, ok
}

// SetItem stores key=value in domain, allocating maps as needed.
func (m *Metadata) SetItem(domain, key, value string) {
	if m.Domains == nil {
		m.Domains = make(map[string]map[string]string)
	}
	if m.Domains[domain] == nil {
		m.Domains[domain] = make(map[string]string)
	}
	m.Domains[domain][key] = value
}

func (b BandMetadata) isEmpty() bool {
	return b.Description == "" && b.Unit == "" && b.NoData == nil && b.Scale == nil && b.Offset == nil
}
