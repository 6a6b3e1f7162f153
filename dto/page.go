package dto

import "bank-site/config"

// PageData carries the chrome every rendered page shares, both when the
// server renders on demand and when the static generator pre-renders.
type PageData struct {
	SiteName string
	Nav      []config.NavLink
}
