package boot

import (
	"github.com/shirouto/dsprobe/frameworks"
	"github.com/shirouto/dsprobe/loader"
)

// List of initializer
var Initializer = []func(){
	loader.Environment,
	loader.Logger,
}

// List of servers that start with the prober
var Servers = []func() []func(){
	frameworks.Http,
}

// Add initialization function and run before application starting
func AddInitializer(init func()) {
	Initializer = append(Initializer, init)
}

// Add server start function
func AddServers(server func() (disconectors []func())) {
	Servers = append(Servers, server)
}

func AddStopper(stopper func()) {
	loader.Stopper = append(loader.Stopper, stopper)
}

// Bootstrap vars and configuration
func OnInit() {
	Initializer = append(Initializer, loader.Launching)
	for _, initializer := range Initializer {
		initializer()
	}
}

// Bootstrap servers and wait for the exit signal
func OnMain(waiter ...chan<- int) {
	for _, runner := range Servers {
		stopper := runner()

		for _, stopFunc := range stopper {
			loader.Stopper = append(loader.Stopper, stopFunc)
		}
	}

	for _, wait := range waiter {
		wait <- int(1)
	}

	loader.WaitForExitSignal()
}
