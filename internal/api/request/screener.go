package request

// SelectStockRequest represents the request body for changing the selected stock
type SelectStockRequest struct {
	Ticker string `json:"ticker"`
}

// SidebarRequest represents an interaction with the admin sidebar.
// Open is the sidebar state the page currently shows.
type SidebarRequest struct {
	Open  bool   `json:"open"`
	Event string `json:"event"`
}
