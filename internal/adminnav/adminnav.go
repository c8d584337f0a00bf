// Package adminnav models the navigation shell shared by the admin pages:
// the fixed sidebar links, the active link for a path, the login guard and
// the sidebar's open state.
package adminnav

import (
	"strings"

	"github.com/kritikayadav/screener-backend/internal/session"
)

const (
	// Title is shown in the sidebar header and the top bar.
	Title = "Admin Panel"

	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/admin/login"

	dashboardPath = "/admin"
)

// Link is one sidebar entry.
type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

var links = []Link{
	{Label: "Dashboard", Path: dashboardPath, Icon: "fa-tachometer-alt"},
	{Label: "Users", Path: "/admin/users", Icon: "fa-users"},
	{Label: "Courses", Path: "/admin/courses", Icon: "fa-book-open"},
	{Label: "E-Books", Path: "/admin/ebooks", Icon: "fa-book"},
	{Label: "Course Enrollment", Path: "/admin/enrollment", Icon: "fa-user-graduate"},
	{Label: "Payment List", Path: "/admin/payments", Icon: "fa-credit-card"},
	{Label: "Testimonials", Path: "/admin/testimonials", Icon: "fa-comment-dots"},
	{Label: "Blogs", Path: "/admin/blogs-list", Icon: "fa-blog"},
	{Label: "Coupon Codes", Path: "/admin/coupons", Icon: "fa-tag"},
	{Label: "Package Purchases", Path: "/admin/packages/purchase-list", Icon: "fa-box-open"},
	{Label: "Taxes", Path: "/admin/taxes", Icon: "fa-file-invoice-dollar"},
	{Label: "Content", Path: "/admin/content", Icon: "fa-file-alt"},
	{Label: "Screener Content", Path: "/admin/screener-content", Icon: "fa-chart-line"},
	{Label: "FAQ", Path: "/admin/faq", Icon: "fa-question-circle"},
	{Label: "Logout", Path: "/admin/logout", Icon: "fa-sign-out-alt"},
}

// Links returns the sidebar entries in display order.
func Links() []Link {
	out := make([]Link, len(links))
	copy(out, links)
	return out
}

// IsActive reports whether link should be highlighted for path. The
// dashboard matches only its exact path; every other link matches by prefix.
func IsActive(link Link, path string) bool {
	if link.Path == dashboardPath {
		return path == dashboardPath
	}
	return strings.HasPrefix(path, link.Path)
}

// Guard returns the path to redirect to when sess may not see admin pages,
// or "" when access is allowed.
func Guard(sess *session.Session) string {
	if !sess.IsAdmin() {
		return LoginPath
	}
	return ""
}

// NavItem is a link together with its highlight state.
type NavItem struct {
	Link
	Active bool `json:"active"`
}

// Nav is everything the admin shell needs to draw itself.
type Nav struct {
	Title       string    `json:"title"`
	Items       []NavItem `json:"items"`
	SidebarOpen bool      `json:"sidebarOpen"`
	User        string    `json:"user"`
}

// Render builds the navigation for path.
func Render(path string, sidebar Sidebar, sess *session.Session) Nav {
	nav := Nav{
		Title:       Title,
		Items:       make([]NavItem, len(links)),
		SidebarOpen: sidebar.Open,
		User:        "Admin",
	}
	if sess != nil && sess.Name != "" {
		nav.User = sess.Name
	}
	for i, l := range links {
		nav.Items[i] = NavItem{Link: l, Active: IsActive(l, path)}
	}
	return nav
}
