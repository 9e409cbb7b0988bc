package system_healthcheck

type MemoryStatsDTO struct {
	TotalBytes     uint64  `json:"totalBytes"`
	AvailableBytes uint64  `json:"availableBytes"`
	UsedPercent    float64 `json:"usedPercent"`
}

type HealthcheckResponseDTO struct {
	Status           string          `json:"status"`
	UptimeSeconds    int64           `json:"uptimeSeconds"`
	ActiveWorkspaces int             `json:"activeWorkspaces"`
	TotalWorkspaces  int             `json:"totalWorkspaces"`
	Memory           *MemoryStatsDTO `json:"memory,omitempty"`
}
