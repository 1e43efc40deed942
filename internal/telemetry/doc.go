// Package telemetry provides OpenTelemetry initialization and helpers
// for distributed tracing across ChefGPT.
//
// Traces and logs are exported over OTLP/HTTP. Endpoints may carry a base
// path (for example a Grafana Cloud "/otlp" gateway); the signal paths are
// appended to it.
package telemetry
