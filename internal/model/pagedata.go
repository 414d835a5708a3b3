package model

// PageData carries what the shared layout needs for any rendered page.
type PageData struct {
	SiteTitle   string
	PageTitle   string
	Description string
	BaseURL     string
	Path        string // site-relative URL of the page, e.g. /archive/
	Cover       string
	Language    string
}

// FullTitle is the document title shown in the browser tab.
func (p PageData) FullTitle() string {
	if p.PageTitle == "" || p.PageTitle == p.SiteTitle {
		return p.SiteTitle
	}
	return p.PageTitle + " | " + p.SiteTitle
}
