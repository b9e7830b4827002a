package domain

// Dimension is one value of an analytical classification axis, loaded from
// the dimension reference table.
type Dimension struct {
	TypeCode        string
	Code            string
	ShortTitle      string
	BusinessPartner string
	IsActive        NoYes

	// Fixture-specific attributes, zero-valued for other types.
	Customer string
}

// DimensionTypeConfig maps one semantic dimension field (e.g. "fixture") to
// its type code and the positional slot it is stored in.
type DimensionTypeConfig struct {
	Field       string // semantic field name on the input DTO
	Code        string // dimension type code, e.g. "FIX"
	FieldNumber int    // 1-based storage slot on analytical lines
	IsMandatory bool   // derived from company configuration
}

// DimensionKey identifies one (type, value) pair for batch loading.
type DimensionKey struct {
	TypeCode string
	Code     string
}
