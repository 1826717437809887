package delog

// ScopeAll lets every level through a Scope.
const ScopeAll = LevelTrace

// Scope is a library's private view of the global logger. Its own maximum level
// is checked before the global one, and its name is the default target. Declare it
// with a constant level to gate a library at build time:
//
//	var log = delog.NewScope("mylib", delog.LevelWarn)
//
//	log.Debug().Msg("never rendered")
type Scope struct {
	name string
	max  Level
}

func NewScope(name string, maxLevel Level) Scope {
	return Scope{name: name, max: maxLevel}
}

func (s Scope) Name() string { return s.name }

// Enabled reports whether both the scope and the global logger let level through.
func (s Scope) Enabled(level Level) bool {
	return s.max < LevelOff && level >= s.max && L().Enabled(level)
}

func (s Scope) Trace() *Event { return s.event(LevelTrace) }
func (s Scope) Debug() *Event { return s.event(LevelDebug) }
func (s Scope) Info() *Event  { return s.event(LevelInfo) }
func (s Scope) Warn() *Event  { return s.event(LevelWarn) }
func (s Scope) Error() *Event { return s.event(LevelError) }

// Log sends r through the scope; an empty target becomes the scope name.
func (s Scope) Log(r *Record) { _ = s.TryLog(r) }

func (s Scope) TryLog(r *Record) error {
	if s.max >= LevelOff || r.Level < s.max {
		return nil
	}
	if r.Target == "" {
		r.Target = s.name
	}
	return L().TryLog(r)
}

func (s Scope) event(level Level) *Event {
	if s.max >= LevelOff || level < s.max {
		return nil
	}
	return L().event(level).Target(s.name)
}
