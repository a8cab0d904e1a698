package model

// Pattern is a named suspicious-activity pattern and the event codes that indicate it.
type Pattern struct {
	Name  string   `yaml:"name"`
	Codes []uint32 `yaml:"codes"`
}

// CatalogEntry is one (pattern, code) pair, used to build selection checklists.
type CatalogEntry struct {
	Pattern string
	Code    uint32
}
