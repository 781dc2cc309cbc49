package domain

// FieldType identifies the declared subtype of a stored property.
type FieldType string

const (
	// FieldTypeCounter is an auto-incrementing unique counter assigned by the
	// hosted front-end. Its numeric component is the display id.
	FieldTypeCounter FieldType = "counter"
	FieldTypeNumber  FieldType = "number"
	FieldTypeText    FieldType = "text"
)

// Field is one typed property from a record's flexible property bag.
// Exactly one of the value members is meaningful, selected by Type.
type Field struct {
	Type    FieldType `bson:"type" json:"type"`
	Counter *int      `bson:"counter,omitempty" json:"counter,omitempty"`
	Number  *float64  `bson:"number,omitempty" json:"number,omitempty"`
	Text    string    `bson:"text,omitempty" json:"text,omitempty"`
}

// Properties is the flexible property bag mirrored from the hosted store.
// The gym front-end owns its schema, so field names are not fixed; the
// naming package probes it with an ordered candidate list.
type Properties map[string]Field

// CounterField builds a counter-typed field. Mostly useful in tests and seeds.
func CounterField(n int) Field {
	return Field{Type: FieldTypeCounter, Counter: &n}
}

// NumberField builds a number-typed field.
func NumberField(n float64) Field {
	return Field{Type: FieldTypeNumber, Number: &n}
}
