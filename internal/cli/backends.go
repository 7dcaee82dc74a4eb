package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/motifqu/motifqu/internal/backend"
	"github.com/motifqu/motifqu/internal/config"
)

// ValidBackends defines the allowed execution backends.
var ValidBackends = []string{"statevector", "sampler", "emulated"}

// buildBackend constructs the named execution backend. The sampler needs
// provider credentials from config or the environment and fails without them.
func buildBackend(name string, cfg config.Config, seed int64, log zerolog.Logger) (backend.Backend, error) {
	switch name {
	case "statevector":
		return backend.NewStatevector(log), nil
	case "emulated":
		return backend.NewEmulated(seed, log), nil
	case "sampler":
		return backend.NewSampler(backend.ProviderConfig{
			URL:     cfg.Provider.URL,
			Token:   cfg.Provider.Token,
			Backend: cfg.Provider.Backend,
			Channel: cfg.Provider.Channel,
		}, log)
	default:
		return nil, fmt.Errorf("unknown backend %q: must be one of %v", name, ValidBackends)
	}
}
