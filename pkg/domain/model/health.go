package model

// HealthStatus represents the health check status of the local collector
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
