package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/tournament-tracker/internal/config"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// InitUptrace installs the global OpenTelemetry providers. The returned func flushes and
// stops them; it is a no-op when tracing is off.
func InitUptrace(cfg config.Config, tags ServiceTags, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	noop := func(context.Context) error { return nil }

	dsn := strings.TrimSpace(cfg.UptraceDSN)
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("tracing disabled", "reason", "UPTRACE_ENABLED=false")
		return noop, nil
	case dsn == "":
		logger.Info("tracing disabled", "reason", "UPTRACE_DSN empty")
		return noop, nil
	}

	uptrace.ConfigureOpentelemetry(uptraceOptions(dsn, tags)...)
	logger.Info("tracing enabled",
		"service_name", tags.Service,
		"service_version", tags.Version,
		"environment", tags.Env,
		"storage", tags.Storage,
	)
	return uptrace.Shutdown, nil
}

func uptraceOptions(dsn string, tags ServiceTags) []uptrace.Option {
	opts := []uptrace.Option{
		uptrace.WithDSN(dsn),
		uptrace.WithServiceName(tags.Service),
		uptrace.WithServiceVersion(tags.Version),
		uptrace.WithDeploymentEnvironment(tags.Env),
	}
	if attrs := tags.Attributes(); len(attrs) > 0 {
		opts = append(opts, uptrace.WithResourceAttributes(attrs...))
	}
	return opts
}
