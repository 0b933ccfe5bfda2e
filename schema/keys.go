package schema

// Keywords of the supported schema subset.
const (
	IDKey      = "$id"
	RefKey     = "$ref"
	DefsKey    = "$defs"
	CommentKey = "$comment"

	TitleKey       = "title"
	DescriptionKey = "description"
	ExamplesKey    = "examples"

	TypeKey  = "type"
	EnumKey  = "enum"
	ConstKey = "const"

	OneOfKey = "oneOf"
	AllOfKey = "allOf"
	AnyOfKey = "anyOf"

	ItemsKey                = "items"
	PropertiesKey           = "properties"
	RequiredKey             = "required"
	AdditionalPropertiesKey = "additionalProperties"

	PatternKey = "pattern"
	MinimumKey = "minimum"
	MaximumKey = "maximum"
)

// DefaultKeywords returns the default supported keyword set. The linter
// treats this as configuration: callers may extend or shrink it via
// LintOptions.
func DefaultKeywords() map[string]bool {
	return map[string]bool{
		IDKey:                   true,
		RefKey:                  true,
		DefsKey:                 true,
		CommentKey:              true,
		TitleKey:                true,
		DescriptionKey:          true,
		ExamplesKey:             true,
		TypeKey:                 true,
		EnumKey:                 true,
		ConstKey:                true,
		OneOfKey:                true,
		AllOfKey:                true,
		AnyOfKey:                true,
		ItemsKey:                true,
		PropertiesKey:           true,
		RequiredKey:             true,
		AdditionalPropertiesKey: true,
		PatternKey:              true,
		MinimumKey:              true,
		MaximumKey:              true,
	}
}

// metadataKeys may appear on any schema node, including reference markers.
var metadataKeys = map[string]bool{
	IDKey:          true,
	TitleKey:       true,
	DescriptionKey: true,
	CommentKey:     true,
	ExamplesKey:    true,
}

// typeNames are the values the "type" keyword accepts.
var typeNames = map[string]bool{
	"boolean": true,
	"string":  true,
	"integer": true,
	"number":  true,
	"array":   true,
	"object":  true,
}
