// Package nav holds the storefront's page paths. API error responses point
// users back to one of these.
package nav

import (
	"net/url"
	"strings"
)

const (
	Home          = "/"
	Product       = "/product/:id"
	Orders        = "/orders"
	Order         = "/orders/:id"
	Admin         = "/admin"
	AdminProducts = "/admin/products"
	AdminUsers    = "/admin/users"
	AdminOrders   = "/admin/orders"
	AdminSettings = "/admin/settings"
	Login         = "/login"
)

type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Storefront is the shopper-facing menu.
var Storefront = []Link{
	{Label: "Shop", Path: Home},
	{Label: "Orders", Path: Orders},
}

// AdminMenu is the back-office menu, in display order.
var AdminMenu = []Link{
	{Label: "Dashboard", Path: Admin},
	{Label: "Products", Path: AdminProducts},
	{Label: "Users", Path: AdminUsers},
	{Label: "Orders", Path: AdminOrders},
	{Label: "Settings", Path: AdminSettings},
}

func ProductPath(id string) string {
	return strings.Replace(Product, ":id", url.PathEscape(id), 1)
}

func OrderPath(id string) string {
	return strings.Replace(Order, ":id", url.PathEscape(id), 1)
}

// RecoveryFor picks the safe page to send a user to after a failed call to
// the API path apiPath.
func RecoveryFor(apiPath string) string {
	switch {
	case strings.HasPrefix(apiPath, "/api/admin/products"):
		return AdminProducts
	case strings.HasPrefix(apiPath, "/api/admin/orders"):
		return AdminOrders
	case strings.HasPrefix(apiPath, "/api/admin/users"):
		return AdminUsers
	case strings.HasPrefix(apiPath, "/api/admin/settings"):
		return AdminSettings
	case strings.HasPrefix(apiPath, "/api/admin"):
		return Admin
	case strings.HasPrefix(apiPath, "/api/orders"):
		return Orders
	default:
		return Home
	}
}
