package models

// Health describes the running server process.
type Health struct {
	Status           string  `json:"status"`
	UptimeSeconds    float64 `json:"uptimeSeconds"`
	TotalEvents      int     `json:"totalEvents"`
	MemoryRSSBytes   uint64  `json:"memoryRssBytes"`
	CPUPercent       float64 `json:"cpuPercent"`
	ConnectedClients int     `json:"connectedClients"`
}
