// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package observe records OpenTelemetry metrics and exposes them to
// Prometheus. Call InitProvider once at startup and mount
// Provider.Handler at /metrics; code records through DefaultMetrics.
package observe
