package config

import (
	"fmt"
	"maps"
	"slices"

	"dario.cat/mergo"
)

// merge returns a new Partial holding base overridden by over. Sections are
// merged recursively; scalars and slices present in over replace base values
// as whole units. Neither argument is modified and the result shares no
// memory with them.
func merge(base, over Partial) (Partial, error) {
	out := base.clone()

	if over.Port != nil {
		out.Port = clonePtr(over.Port)
	}
	if over.Host.Set {
		out.Host = NullString{Set: true, Value: clonePtr(over.Host.Value)}
	}
	if over.Logging != nil {
		out.Logging = clonePtr(over.Logging)
	}

	out.API = mergeAPI(out.API, over.API)

	static, err := mergeStatic(out.Static, over.Static)
	if err != nil {
		return Partial{}, err
	}
	out.Static = static

	out.LiveReload = mergeLiveReload(out.LiveReload, over.LiveReload)

	return out, nil
}

func mergeAPI(base, over *PartialAPI) *PartialAPI {
	if over == nil {
		return base
	}
	if over.Disabled || base == nil || base.Disabled {
		return over.clone()
	}

	out := base.clone()
	if over.BodyLimit != nil {
		out.BodyLimit = clonePtr(over.BodyLimit)
	}
	return out
}

func mergeStatic(base, over *PartialStatic) (*PartialStatic, error) {
	if over == nil {
		return base, nil
	}
	if base == nil {
		return over.clone(), nil
	}

	out := base.clone()
	if over.Path != nil {
		out.Path = clonePtr(over.Path)
	}
	if over.SPA != nil {
		out.SPA = clonePtr(over.SPA)
	}
	if over.Index != nil {
		out.Index = clonePtr(over.Index)
	}
	if over.NodeModules != nil {
		out.NodeModules = clonePtr(over.NodeModules)
	}
	if over.LiveReload != nil {
		out.LiveReload = clonePtr(over.LiveReload)
	}
	if over.Headers != nil {
		// headers are merged per name rather than replaced
		if err := mergo.Merge(&out.Headers, over.Headers, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging static headers: %w", err)
		}
	}

	return out, nil
}

func mergeLiveReload(base, over *PartialLiveReload) *PartialLiveReload {
	if over == nil {
		return base
	}
	if over.Disabled || base == nil || base.Disabled {
		return over.clone()
	}

	out := base.clone()
	if over.Watch != nil {
		out.Watch = slices.Clone(over.Watch)
	}
	out.Options = mergeLiveReloadOptions(out.Options, over.Options)
	return out
}

func mergeLiveReloadOptions(base, over *PartialLiveReloadOptions) *PartialLiveReloadOptions {
	if over == nil {
		return base
	}
	if base == nil {
		return over.clone()
	}

	out := base.clone()
	if over.Exts != nil {
		out.Exts = slices.Clone(over.Exts)
	}
	if over.Exclusions != nil {
		out.Exclusions = slices.Clone(over.Exclusions)
	}
	if over.Delay != nil {
		out.Delay = clonePtr(over.Delay)
	}
	return out
}

func (p Partial) clone() Partial {
	return Partial{
		Port:       clonePtr(p.Port),
		Host:       NullString{Set: p.Host.Set, Value: clonePtr(p.Host.Value)},
		Logging:    clonePtr(p.Logging),
		API:        p.API.clone(),
		Static:     p.Static.clone(),
		LiveReload: p.LiveReload.clone(),
	}
}

func (a *PartialAPI) clone() *PartialAPI {
	if a == nil {
		return nil
	}
	return &PartialAPI{
		BodyLimit: clonePtr(a.BodyLimit),
		Disabled:  a.Disabled,
	}
}

func (s *PartialStatic) clone() *PartialStatic {
	if s == nil {
		return nil
	}
	return &PartialStatic{
		Path:        clonePtr(s.Path),
		SPA:         clonePtr(s.SPA),
		Index:       clonePtr(s.Index),
		NodeModules: clonePtr(s.NodeModules),
		LiveReload:  clonePtr(s.LiveReload),
		Headers:     maps.Clone(s.Headers),
	}
}

func (l *PartialLiveReload) clone() *PartialLiveReload {
	if l == nil {
		return nil
	}
	return &PartialLiveReload{
		Options:  l.Options.clone(),
		Watch:    slices.Clone(l.Watch),
		Disabled: l.Disabled,
	}
}

func (o *PartialLiveReloadOptions) clone() *PartialLiveReloadOptions {
	if o == nil {
		return nil
	}
	return &PartialLiveReloadOptions{
		Exts:       slices.Clone(o.Exts),
		Exclusions: slices.Clone(o.Exclusions),
		Delay:      clonePtr(o.Delay),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
