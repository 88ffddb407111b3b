package config

import (
	"bytes"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadProfiles reads a profile YAML file and returns the validated registry.
// Profiles in the file replace built-in profiles with the same id and are appended
// otherwise, unless the file sets replace_builtin.
func LoadProfiles(filename string) (*Registry, error) {
	fileBytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read profile file '%s'", filename)
	}
	pf, err := parseProfileFile(fileBytes)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse YAML in '%s'", filename)
	}
	return NewRegistry(mergeProfiles(pf))
}

func parseProfileFile(data []byte) (*ProfileFile, error) {
	var pf ProfileFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return nil, err
	}
	return &pf, nil
}

func mergeProfiles(pf *ProfileFile) []ClientProfile {
	if pf.ReplaceBuiltin {
		return pf.Profiles
	}
	merged := BuiltinProfiles()
	index := make(map[string]int, len(merged))
	for i, p := range merged {
		index[p.ID] = i
	}
	for _, p := range pf.Profiles {
		if i, ok := index[p.ID]; ok {
			merged[i] = p
			continue
		}
		index[p.ID] = len(merged)
		merged = append(merged, p)
	}
	return merged
}

// applyDefaults fills unset optional profile fields.
func applyDefaults(p *ClientProfile) {
	if p.ParserKind == "" {
		p.ParserKind = ParserMultiSchemaCSV
	}
	if p.DefaultEnforcement == "" {
		p.DefaultEnforcement = DefaultEnforcement
	}
	if p.UnitDigitCount == 0 && p.UnitMethod != UnitMethodFixed {
		p.UnitDigitCount = DefaultUnitDigitCount
	}
	if p.EnableValueCase == "" {
		p.EnableValueCase = DefaultEnableValueCase
	}
	if p.OutputSchema == "" {
		if p.ParserKind == ParserWideExcel {
			p.OutputSchema = SchemaVariantC
		} else {
			p.OutputSchema = SchemaVariantA
		}
	}
	if p.ParserKind == ParserWideExcel && p.ABBPriorityDefault == 0 {
		p.ABBPriorityDefault = DefaultABBPriority
	}
	for i := range p.TagSourceRules {
		if p.TagSourceRules[i].Enforcement == "" {
			p.TagSourceRules[i].Enforcement = DefaultEnforcement
		}
	}
	for id, a := range p.Areas {
		for i := range a.TagSourceRules {
			if a.TagSourceRules[i].Enforcement == "" {
				a.TagSourceRules[i].Enforcement = DefaultEnforcement
			}
		}
		p.Areas[id] = a
	}
}
