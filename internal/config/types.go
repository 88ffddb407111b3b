package config

// Define constants for profile fields, enums and defaults.
const (
	ParserMultiSchemaCSV = "multi-schema-csv" // DynAMo style export, one sub-schema per row
	ParserWideExcel      = "wide-excel"       // ABB style workbook, one row per tag

	UnitMethodTagPrefix   = "tag-prefix"
	UnitMethodAssetParent = "asset-parent"
	UnitMethodAssetChild  = "asset-child"
	UnitMethodBoth        = "both"
	UnitMethodFixed       = "fixed"

	SchemaVariantA = "variant-A-45col"
	SchemaVariantB = "variant-B-43col"
	SchemaVariantC = "variant-C-23col"

	MatchExact    = "exact"    // case-insensitive equality
	MatchPrefix   = "prefix"   // case-insensitive prefix
	MatchContains = "contains" // case-sensitive substring
	MatchInSet    = "in-set"   // case-insensitive membership

	FieldPointType = "point-type"
	FieldTagName   = "tag-name"

	EnableCaseUpper = "upper" // TRUE / FALSE
	EnableCaseTitle = "title" // True / False

	EnforcementModifiable = "M"
	EnforcementRestricted = "R"

	DefaultEnforcement     = EnforcementModifiable
	DefaultUnitDigitCount  = 2
	DefaultABBPriority     = 3
	DefaultEnableValueCase = EnableCaseUpper
)

// TagSourceRule classifies a tag into a tag source. Rules are evaluated in declared order.
type TagSourceRule struct {
	// Match is one of exact, prefix, contains, in-set.
	Match string `yaml:"match"`
	// Field selects the tag attribute tested: point-type or tag-name.
	Field string `yaml:"field"`
	// Pattern is used by exact, prefix and contains.
	Pattern string `yaml:"pattern,omitempty"`
	// Values is used by in-set.
	Values []string `yaml:"values,omitempty"`
	// Source is the resulting tag source.
	Source string `yaml:"source"`
	// Enforcement is the resulting enforcement; defaults to "M".
	Enforcement string `yaml:"enforcement,omitempty"`
}

// ABBAlarmType maps a wide-workbook column suffix to the PHA-Pro alarm type name.
type ABBAlarmType struct {
	Suffix string `yaml:"suffix"`
	Name   string `yaml:"name"`
}

// AreaOverride holds the profile fields an area may replace. Nil or empty fields inherit the base profile.
type AreaOverride struct {
	DisplayName      string          `yaml:"display_name"`
	UnitMethod       string          `yaml:"unit_method,omitempty"`
	UnitDigitCount   *int            `yaml:"unit_digit_count,omitempty"`
	UnitValue        string          `yaml:"unit_value,omitempty"`
	DefaultSource    string          `yaml:"default_source,omitempty"`
	TagSourceRules   []TagSourceRule `yaml:"tag_source_rules,omitempty"`
	EmptyModeIsValid *bool           `yaml:"empty_mode_is_valid,omitempty"`
}

// ClientProfile is the conversion configuration of one site and vendor.
type ClientProfile struct {
	ID          string `yaml:"id"`
	DisplayName string `yaml:"display_name"`
	Vendor      string `yaml:"vendor,omitempty"`
	DCSName     string `yaml:"dcs_name,omitempty"`
	PHATool     string `yaml:"pha_tool,omitempty"`

	ParserKind     string `yaml:"parser_kind"`
	UnitMethod     string `yaml:"unit_method"`
	UnitDigitCount int    `yaml:"unit_digit_count,omitempty"`
	// UnitValue is the unit of every tag when UnitMethod is fixed.
	UnitValue string `yaml:"unit_value,omitempty"`
	// UseDCSUnitName emits the _DCS unit column, when present, instead of the derived unit code.
	UseDCSUnitName bool `yaml:"use_dcs_unit_name,omitempty"`

	TagSourceRules     []TagSourceRule `yaml:"tag_source_rules,omitempty"`
	DefaultSource      string          `yaml:"default_source"`
	DefaultEnforcement string          `yaml:"default_enforcement,omitempty"`

	OutputSchema     string `yaml:"output_schema"`
	EmptyModeIsValid bool   `yaml:"empty_mode_is_valid,omitempty"`
	// EnableValueCase is the capitalization the DCS import expects for the disabled flag.
	EnableValueCase string `yaml:"enable_value_case,omitempty"`

	ABBAlarmTypes      []ABBAlarmType `yaml:"abb_alarm_types,omitempty"`
	ABBPriorityDefault int            `yaml:"abb_priority_default,omitempty"`

	// Filter is an optional govaluate expression evaluated against each alarm.
	// Example: "priority != 'Journal' && !discrete"
	Filter string `yaml:"filter,omitempty"`

	Areas map[string]AreaOverride `yaml:"areas,omitempty"`

	// Area is the id of the area merged into this profile, empty for a base profile.
	Area string `yaml:"-"`
}

// ProfileFile is the layout of a profile YAML file.
type ProfileFile struct {
	// ReplaceBuiltin drops the built-in profiles instead of overlaying the file onto them.
	ReplaceBuiltin bool            `yaml:"replace_builtin,omitempty"`
	Profiles       []ClientProfile `yaml:"profiles"`
}
