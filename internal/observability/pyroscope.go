package observability

import (
	"fmt"
	"runtime"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/tournament-tracker/internal/config"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
)

const contentionSampleRate = 5

var baseProfiles = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// profileTypes adds the contention profile that matters for the storage driver: the memory
// store serialises writers on one mutex, postgres callers block on the connection pool.
func profileTypes(storage string) []pyroscope.ProfileType {
	types := append([]pyroscope.ProfileType(nil), baseProfiles...)
	switch storage {
	case config.StorageMemory:
		types = append(types, pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration)
	case config.StoragePostgres:
		types = append(types, pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration)
	}
	return types
}

// InitPyroscope starts continuous profiling when enabled. The returned func stops the
// profiler and turns contention sampling back off.
func InitPyroscope(cfg config.Config, tags ServiceTags, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.PyroscopeEnabled {
		logger.Info("profiling disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	setContentionSampling(tags.Storage, contentionSampleRate)
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              tags.Labels(),
		ProfileTypes:      profileTypes(tags.Storage),
	})
	if err != nil {
		setContentionSampling(tags.Storage, 0)
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}

	logger.Info("profiling enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
		"storage", tags.Storage,
	)

	return func() error {
		err := profiler.Stop()
		setContentionSampling(tags.Storage, 0)
		return err
	}, nil
}

func setContentionSampling(storage string, rate int) {
	switch storage {
	case config.StorageMemory:
		runtime.SetMutexProfileFraction(rate)
	case config.StoragePostgres:
		runtime.SetBlockProfileRate(rate)
	}
}
