package model

// UsageStatus is the screener usage reported by the remote tracking service.
type UsageStatus struct {
	Success      bool `json:"success"`
	CurrentCount int  `json:"currentCount"`
	Remaining    int  `json:"remaining"`
	LimitReached bool `json:"limitReached"`
}
