package update_mode

type ModeSwitcher interface {
	Simulated() bool
	SetSimulated(simulated bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
