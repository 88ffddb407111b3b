package config

import (
	"errors"
	"sort"

	"github.com/rotisserie/eris"
)

var (
	ErrUnknownClient = errors.New("unknown client profile")
	ErrUnknownArea   = errors.New("unknown area")
)

// Registry is the read-only set of validated client profiles. It is safe for concurrent use.
type Registry struct {
	order    []string
	profiles map[string]ClientProfile
}

// NewRegistry applies defaults to the profiles, validates them and builds a registry.
func NewRegistry(profiles []ClientProfile) (*Registry, error) {
	list := make([]ClientProfile, len(profiles))
	for i := range profiles {
		list[i] = profiles[i].clone()
		applyDefaults(&list[i])
	}
	if err := ValidateProfiles(list); err != nil {
		return nil, err
	}
	r := &Registry{profiles: make(map[string]ClientProfile, len(list))}
	for _, p := range list {
		r.order = append(r.order, p.ID)
		r.profiles[p.ID] = p
	}
	return r, nil
}

// DefaultRegistry returns a registry of the built-in profiles.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinProfiles())
	if err != nil {
		panic("built-in profiles are invalid: " + err.Error())
	}
	return r
}

// IDs returns the client ids in declaration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Get returns a copy of the base profile for id.
func (r *Registry) Get(id string) (*ClientProfile, bool) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, false
	}
	c := p.clone()
	return &c, true
}

// Areas returns area id -> display name for a client. Unknown clients have no areas.
func (r *Registry) Areas(id string) map[string]string {
	out := make(map[string]string)
	p, ok := r.profiles[id]
	if !ok {
		return out
	}
	for areaID, a := range p.Areas {
		name := a.DisplayName
		if name == "" {
			name = areaID
		}
		out[areaID] = name
	}
	return out
}

// AreaIDs returns the area ids of a client, sorted.
func (r *Registry) AreaIDs(id string) []string {
	areas := r.Areas(id)
	ids := make([]string, 0, len(areas))
	for a := range areas {
		ids = append(ids, a)
	}
	sort.Strings(ids)
	return ids
}

// Resolve returns the profile for a client with the given area merged in. An empty area
// returns the base profile. The result is a private copy; callers may not share it back.
func (r *Registry) Resolve(clientID, areaID string) (*ClientProfile, error) {
	base, ok := r.profiles[clientID]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownClient, "client '%s' (known: %v)", clientID, r.order)
	}
	p := base.clone()
	if areaID == "" {
		return &p, nil
	}
	override, ok := base.Areas[areaID]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownArea, "area '%s' for client '%s' (known: %v)", areaID, clientID, r.AreaIDs(clientID))
	}
	p.applyArea(areaID, override)
	return &p, nil
}

// applyArea shallow-merges an area override onto p.
func (p *ClientProfile) applyArea(areaID string, a AreaOverride) {
	p.Area = areaID
	if a.DisplayName != "" {
		p.DisplayName = p.DisplayName + " - " + a.DisplayName
	}
	if a.UnitMethod != "" {
		p.UnitMethod = a.UnitMethod
	}
	if a.UnitDigitCount != nil {
		p.UnitDigitCount = *a.UnitDigitCount
	}
	if a.UnitValue != "" {
		p.UnitValue = a.UnitValue
	}
	if a.DefaultSource != "" {
		p.DefaultSource = a.DefaultSource
	}
	if a.TagSourceRules != nil {
		p.TagSourceRules = cloneRules(a.TagSourceRules)
	}
	if a.EmptyModeIsValid != nil {
		p.EmptyModeIsValid = *a.EmptyModeIsValid
	}
}

func (p ClientProfile) clone() ClientProfile {
	c := p
	c.TagSourceRules = cloneRules(p.TagSourceRules)
	c.ABBAlarmTypes = append([]ABBAlarmType(nil), p.ABBAlarmTypes...)
	if p.Areas != nil {
		c.Areas = make(map[string]AreaOverride, len(p.Areas))
		for k, v := range p.Areas {
			v.TagSourceRules = cloneRules(v.TagSourceRules)
			c.Areas[k] = v
		}
	}
	return c
}

func cloneRules(rules []TagSourceRule) []TagSourceRule {
	if rules == nil {
		return nil
	}
	out := make([]TagSourceRule, len(rules))
	for i, r := range rules {
		r.Values = append([]string(nil), r.Values...)
		out[i] = r
	}
	return out
}
