package delog

// Facade helpers using the global logger.
// Usage: delog.Info().Str("k", "v").Msg("hello"); later delog.Flush()

func Trace() *Event { return L().Trace() }
func Debug() *Event { return L().Debug() }
func Info() *Event  { return L().Info() }
func Warn() *Event  { return L().Warn() }
func Error() *Event { return L().Error() }

// Flush drains the global logger. It is a no-op before Init.
func Flush() { L().Flush() }

// Stats returns the global logger's statistics, all zero before Init.
func Stats() Statistics { return L().Statistics() }
