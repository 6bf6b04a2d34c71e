package observability

import (
	"os"
	"strings"

	"github.com/riskibarqy/tournament-tracker/internal/config"
	"go.opentelemetry.io/otel/attribute"
)

// ServiceTags identify one running tracker in traces and profiles.
type ServiceTags struct {
	Service  string
	Version  string
	Env      string
	Storage  string
	Instance string
}

func TagsFromConfig(cfg config.Config) ServiceTags {
	instance, _ := os.Hostname()
	return ServiceTags{
		Service:  strings.TrimSpace(cfg.ServiceName),
		Version:  strings.TrimSpace(cfg.ServiceVersion),
		Env:      strings.TrimSpace(cfg.AppEnv),
		Storage:  cfg.StorageDriver,
		Instance: instance,
	}
}

// Attributes are attached to the tracing resource. Empty values are left out.
func (t ServiceTags) Attributes() []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if t.Storage != "" {
		attrs = append(attrs, attribute.String("tracker.storage", t.Storage))
		if t.Storage == config.StoragePostgres {
			attrs = append(attrs, attribute.String("db.system", "postgresql"))
		}
	}
	if t.Instance != "" {
		attrs = append(attrs, attribute.String("service.instance.id", t.Instance))
	}
	return attrs
}

// Labels are the profiler tags. Empty values are left out.
func (t ServiceTags) Labels() map[string]string {
	labels := make(map[string]string, 5)
	for k, v := range map[string]string{
		"service":  t.Service,
		"version":  t.Version,
		"env":      t.Env,
		"storage":  t.Storage,
		"instance": t.Instance,
	} {
		if v != "" {
			labels[k] = v
		}
	}
	return labels
}
