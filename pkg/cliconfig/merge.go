package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// When source.SetFields is present, exactly the listed keys are applied, so an
// explicit zero or false wins. Otherwise only non-zero values are applied.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	isSet := func(key string, nonZero bool) bool {
		if source.SetFields != nil {
			return source.SetFields[key]
		}
		return nonZero
	}
	apply := func(key string, nonZero bool, assign func()) {
		if isSet(key, nonZero) {
			assign()
			target.Sources[key] = sourceType
		}
	}

	apply("host", source.Host != "", func() { target.Host = source.Host })
	apply("port", source.Port != 0, func() { target.Port = source.Port })
	apply("readTimeout", source.ReadTimeout != 0, func() { target.ReadTimeout = source.ReadTimeout })
	apply("writeTimeout", source.WriteTimeout != 0, func() { target.WriteTimeout = source.WriteTimeout })
	apply("shutdownTimeout", source.ShutdownTimeout != 0, func() { target.ShutdownTimeout = source.ShutdownTimeout })
	apply("dbPath", source.DBPath != "", func() { target.DBPath = source.DBPath })
	apply("logLevel", source.LogLevel != "", func() { target.LogLevel = source.LogLevel })
	apply("logFormat", source.LogFormat != "", func() { target.LogFormat = source.LogFormat })
	apply("lokiUrl", source.LokiURL != "", func() { target.LokiURL = source.LokiURL })
	apply("runtimeMetrics", source.RuntimeMetrics, func() { target.RuntimeMetrics = source.RuntimeMetrics })
}
