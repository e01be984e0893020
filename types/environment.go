package types

// ISystemInfo provides configuration for system information display
type ISystemInfo interface {
	// EnableStartupBanner controls whether to display the startup banner
	EnableStartupBanner() bool
	// EnableTargetInfo controls whether configured targets are listed at startup
	EnableTargetInfo() bool
}

// Environment names the runtime the prober reports in its banner.
type Environment struct {
	Name  string
	Debug string
}

func (e *Environment) GetName() string {
	return e.Name
}

func (e *Environment) GetDebug() string {
	return e.Debug
}
