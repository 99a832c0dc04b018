package api

import (
	"sort"
	"sync"

	"mimic/pkg/logging"
)

// Simulator registry variables store the registered simulator implementations.
// These variables are protected by registryMutex for thread-safe access.
var (
	simulators    = map[string]Simulator{}
	registryMutex sync.RWMutex
)

// RegisterSimulator registers a simulator implementation under its name.
//
// The registration is thread-safe and should be called during system
// initialization, before the server starts building its tool list. Only one
// simulator can be registered per name; subsequent registrations replace the
// previous one.
func RegisterSimulator(s Simulator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	logging.Debug("API", "Registering simulator: %s", s.Name())
	simulators[s.Name()] = s
}

// DeregisterSimulator removes a simulator from the registry. Mainly used by
// tests that register mock simulators.
func DeregisterSimulator(name string) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	delete(simulators, name)
}

// GetSimulator returns the simulator registered under name, or nil.
func GetSimulator(name string) Simulator {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	return simulators[name]
}

// ListSimulators returns all registered simulators sorted by name.
func ListSimulators() []Simulator {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	names := make([]string, 0, len(simulators))
	for name := range simulators {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Simulator, 0, len(names))
	for _, name := range names {
		result = append(result, simulators[name])
	}
	return result
}
