package app

import (
	"mimic/internal/api"
	"mimic/internal/config"
	"mimic/internal/sim/blender"
	"mimic/internal/sim/contacts"
	"mimic/internal/sim/github"
	"mimic/internal/sim/googlehome"
	"mimic/internal/sim/linkedin"
	"mimic/internal/sim/media"
	"mimic/internal/sim/messages"
	"mimic/pkg/logging"
)

// RegisterSimulators constructs every simulator that is not disabled in the
// configuration and registers it with the API registry. The messages
// simulator resolves recipients against the live contacts simulator, so it
// only gets that wiring when contacts is enabled too.
func RegisterSimulators(cfg config.Config) []api.Simulator {
	var contactsSim *contacts.Simulator
	if cfg.Simulator("contacts").IsEnabled() {
		contactsSim = contacts.New()
	}

	candidates := []api.Simulator{
		blender.New(),
		github.New(),
		googlehome.New(),
		linkedin.New(),
		media.New(),
		messages.New(contactsSim),
	}
	if contactsSim != nil {
		candidates = append(candidates, contactsSim)
	}

	var registered []api.Simulator
	for _, sim := range candidates {
		if !cfg.Simulator(sim.Name()).IsEnabled() {
			logging.Info("App", "simulator %s disabled by configuration", sim.Name())
			continue
		}
		api.RegisterSimulator(sim)
		registered = append(registered, sim)
	}
	return registered
}

// DeregisterSimulators removes the given simulators from the registry.
// Used by tests and by CLI commands that register temporarily.
func DeregisterSimulators(sims []api.Simulator) {
	for _, sim := range sims {
		api.DeregisterSimulator(sim.Name())
	}
}
