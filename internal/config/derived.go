package config

// derivedDefault computes a value from already merged fields. A rule must
// only write targets that no source has set.
type derivedDefault struct {
	name  string
	apply func(p *Partial)
}

// derivedDefaults run once, in this order, after the merge.
var derivedDefaults = []derivedDefault{
	{
		// a top-level live-reload section turns on the script injection of
		// static serving unless static serving says otherwise
		name: "static-livereload",
		apply: func(p *Partial) {
			if !p.LiveReload.enabled() {
				return
			}
			if p.Static == nil {
				p.Static = &PartialStatic{}
			}
			if p.Static.LiveReload == nil {
				p.Static.LiveReload = ptr(true)
			}
		},
	},
}

func applyDerivedDefaults(p *Partial) {
	for _, rule := range derivedDefaults {
		rule.apply(p)
	}
}

func (l *PartialLiveReload) enabled() bool {
	return l != nil && !l.Disabled
}

func (a *PartialAPI) enabled() bool {
	return a != nil && !a.Disabled
}
