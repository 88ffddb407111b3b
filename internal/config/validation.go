package config

import (
	"fmt"
	"strings"

	"alarm-bridge/internal/logging"

	"github.com/Knetic/govaluate"
	"github.com/rotisserie/eris"
)

// Define known valid enum values for profile fields.
var (
	knownParserKinds     = []string{ParserMultiSchemaCSV, ParserWideExcel}
	knownUnitMethods     = []string{UnitMethodTagPrefix, UnitMethodAssetParent, UnitMethodAssetChild, UnitMethodBoth, UnitMethodFixed}
	knownSchemaVariants  = []string{SchemaVariantA, SchemaVariantB, SchemaVariantC}
	knownMatchKinds      = []string{MatchExact, MatchPrefix, MatchContains, MatchInSet}
	knownMatchFields     = []string{FieldPointType, FieldTagName}
	knownEnforcements    = []string{EnforcementModifiable, EnforcementRestricted}
	knownEnableCases     = []string{EnableCaseUpper, EnableCaseTitle}
	knownFilterVariables = []string{"tag", "unit", "mode", "alarmType", "priority", "pointType", "source", "discrete"}
)

// isValidEnumValue checks if a value is present in a list of allowed string values (case-sensitive).
func isValidEnumValue(value string, allowedValues []string) bool {
	for _, allowed := range allowedValues {
		if value == allowed {
			return true
		}
	}
	return false
}

// ValidateProfiles checks every profile and reports all problems in one error.
func ValidateProfiles(profiles []ClientProfile) error {
	var allErrors []string
	if len(profiles) == 0 {
		allErrors = append(allErrors, "- Profiles: at least one client profile is required")
	}
	seen := make(map[string]bool, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		prefix := fmt.Sprintf("Profiles[%d]", i)
		if p.ID != "" {
			prefix = fmt.Sprintf("Profiles[%s]", p.ID)
			if seen[p.ID] {
				allErrors = append(allErrors, fmt.Sprintf("- %s.ID: duplicate client id '%s'", prefix, p.ID))
			}
			seen[p.ID] = true
		}
		allErrors = append(allErrors, validateProfile(prefix, p)...)
	}
	if len(allErrors) > 0 {
		return eris.Errorf("profile validation failed:\n%s", strings.Join(allErrors, "\n"))
	}
	logging.Logf(logging.Debug, "Profile validation successful (%d profiles).", len(profiles))
	return nil
}

func validateProfile(prefix string, p *ClientProfile) []string {
	var errs []string
	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, fmt.Sprintf("- %s.ID: is required", prefix))
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		errs = append(errs, fmt.Sprintf("- %s.DisplayName: is required", prefix))
	}
	if !isValidEnumValue(p.ParserKind, knownParserKinds) {
		errs = append(errs, fmt.Sprintf("- %s.ParserKind: invalid parser kind '%s', must be one of %v", prefix, p.ParserKind, knownParserKinds))
	}
	errs = append(errs, validateUnitMethod(prefix, p.UnitMethod, p.UnitDigitCount, p.UnitValue)...)
	if strings.TrimSpace(p.DefaultSource) == "" {
		errs = append(errs, fmt.Sprintf("- %s.DefaultSource: is required", prefix))
	}
	if !isValidEnumValue(p.DefaultEnforcement, knownEnforcements) {
		errs = append(errs, fmt.Sprintf("- %s.DefaultEnforcement: invalid enforcement '%s', must be one of %v", prefix, p.DefaultEnforcement, knownEnforcements))
	}
	if !isValidEnumValue(p.EnableValueCase, knownEnableCases) {
		errs = append(errs, fmt.Sprintf("- %s.EnableValueCase: invalid value '%s', must be one of %v", prefix, p.EnableValueCase, knownEnableCases))
	}
	errs = append(errs, validateSchema(prefix, p)...)
	errs = append(errs, validateRules(prefix+".TagSourceRules", p.TagSourceRules)...)

	if p.Filter != "" {
		if _, err := govaluate.NewEvaluableExpression(p.Filter); err != nil {
			errs = append(errs, fmt.Sprintf("- %s.Filter: invalid expression syntax: %v (variables: %v)", prefix, err, knownFilterVariables))
		}
	}

	for areaID, a := range p.Areas {
		errs = append(errs, validateArea(fmt.Sprintf("%s.Areas[%s]", prefix, areaID), p, a)...)
	}
	return errs
}

func validateUnitMethod(prefix, method string, digits int, value string) []string {
	var errs []string
	if !isValidEnumValue(method, knownUnitMethods) {
		errs = append(errs, fmt.Sprintf("- %s.UnitMethod: invalid unit method '%s', must be one of %v", prefix, method, knownUnitMethods))
		return errs
	}
	if method == UnitMethodFixed {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Sprintf("- %s.UnitValue: is required when UnitMethod is '%s'", prefix, UnitMethodFixed))
		}
	} else if digits < 1 {
		errs = append(errs, fmt.Sprintf("- %s.UnitDigitCount: must be at least 1, got %d", prefix, digits))
	}
	return errs
}

func validateSchema(prefix string, p *ClientProfile) []string {
	var errs []string
	if !isValidEnumValue(p.OutputSchema, knownSchemaVariants) {
		return append(errs, fmt.Sprintf("- %s.OutputSchema: invalid schema variant '%s', must be one of %v", prefix, p.OutputSchema, knownSchemaVariants))
	}
	switch p.ParserKind {
	case ParserWideExcel:
		if p.OutputSchema != SchemaVariantC {
			errs = append(errs, fmt.Sprintf("- %s.OutputSchema: parser '%s' requires '%s'", prefix, ParserWideExcel, SchemaVariantC))
		}
		if len(p.ABBAlarmTypes) == 0 {
			errs = append(errs, fmt.Sprintf("- %s.ABBAlarmTypes: at least one suffix is required for parser '%s'", prefix, ParserWideExcel))
		}
		if p.ABBPriorityDefault < 1 {
			errs = append(errs, fmt.Sprintf("- %s.ABBPriorityDefault: must be positive, got %d", prefix, p.ABBPriorityDefault))
		}
	case ParserMultiSchemaCSV:
		if p.OutputSchema == SchemaVariantC {
			errs = append(errs, fmt.Sprintf("- %s.OutputSchema: '%s' is only produced from parser '%s'", prefix, SchemaVariantC, ParserWideExcel))
		}
	}
	suffixes := make(map[string]bool)
	for i, t := range p.ABBAlarmTypes {
		if strings.TrimSpace(t.Suffix) == "" || strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Sprintf("- %s.ABBAlarmTypes[%d]: suffix and name are required", prefix, i))
			continue
		}
		if suffixes[strings.ToUpper(t.Suffix)] {
			errs = append(errs, fmt.Sprintf("- %s.ABBAlarmTypes[%d].Suffix: duplicate suffix '%s'", prefix, i, t.Suffix))
		}
		suffixes[strings.ToUpper(t.Suffix)] = true
	}
	return errs
}

func validateRules(prefix string, rules []TagSourceRule) []string {
	var errs []string
	for i, r := range rules {
		rp := fmt.Sprintf("%s[%d]", prefix, i)
		if !isValidEnumValue(r.Match, knownMatchKinds) {
			errs = append(errs, fmt.Sprintf("- %s.Match: invalid match kind '%s', must be one of %v", rp, r.Match, knownMatchKinds))
		}
		if !isValidEnumValue(r.Field, knownMatchFields) {
			errs = append(errs, fmt.Sprintf("- %s.Field: invalid field '%s', must be one of %v", rp, r.Field, knownMatchFields))
		}
		if r.Match == MatchInSet {
			if len(r.Values) == 0 {
				errs = append(errs, fmt.Sprintf("- %s.Values: is required for match kind '%s'", rp, MatchInSet))
			}
			if r.Pattern != "" {
				logging.Logf(logging.Warning, "Validation: %s.Pattern is ignored for match kind '%s'", rp, MatchInSet)
			}
		} else if r.Pattern == "" && isValidEnumValue(r.Match, knownMatchKinds) {
			errs = append(errs, fmt.Sprintf("- %s.Pattern: is required for match kind '%s'", rp, r.Match))
		}
		if strings.TrimSpace(r.Source) == "" {
			errs = append(errs, fmt.Sprintf("- %s.Source: is required", rp))
		}
		if !isValidEnumValue(r.Enforcement, knownEnforcements) {
			errs = append(errs, fmt.Sprintf("- %s.Enforcement: invalid enforcement '%s', must be one of %v", rp, r.Enforcement, knownEnforcements))
		}
	}
	return errs
}

func validateArea(prefix string, base *ClientProfile, a AreaOverride) []string {
	method := base.UnitMethod
	if a.UnitMethod != "" {
		method = a.UnitMethod
	}
	digits := base.UnitDigitCount
	if a.UnitDigitCount != nil {
		digits = *a.UnitDigitCount
	}
	value := base.UnitValue
	if a.UnitValue != "" {
		value = a.UnitValue
	}
	var errs []string
	if method != base.UnitMethod || digits != base.UnitDigitCount || value != base.UnitValue {
		errs = append(errs, validateUnitMethod(prefix, method, digits, value)...)
	}
	return append(errs, validateRules(prefix+".TagSourceRules", a.TagSourceRules)...)
}

// IsUnitMethod reports whether m is a known unit extraction method.
func IsUnitMethod(m string) bool {
	return isValidEnumValue(m, knownUnitMethods)
}
