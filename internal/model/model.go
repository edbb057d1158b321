package model

// Site is the navigation configuration handed to the documentation renderer.
// It is built once with New (or loaded and validated) and only read afterwards.
type Site struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	ThemeConfig ThemeConfig `json:"themeConfig" yaml:"themeConfig"`
}

// SiteMeta holds the site-wide title and description.
type SiteMeta struct {
	Title       string
	Description string
}

// ThemeConfig groups the top navigation, the sidebar and the social links.
type ThemeConfig struct {
	Nav         []NavItem      `json:"nav" yaml:"nav"`
	Sidebar     []SidebarGroup `json:"sidebar" yaml:"sidebar"`
	SocialLinks []SocialLink   `json:"socialLinks" yaml:"socialLinks"`
}

// NavItem is a top navigation entry. A leaf has a Link; a group (such as the
// language switcher) has Items and no Link.
type NavItem struct {
	Text  string    `json:"text" yaml:"text"`
	Link  string    `json:"link,omitempty" yaml:"link,omitempty"`
	Items []NavLink `json:"items,omitempty" yaml:"items,omitempty"`
}

// IsGroup reports whether the entry holds sub-items instead of a link.
func (n NavItem) IsGroup() bool {
	return len(n.Items) > 0
}

// NavLink is a leaf entry: a label and where it points.
type NavLink struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// SidebarGroup is a labeled cluster of page links.
type SidebarGroup struct {
	Text  string    `json:"text" yaml:"text"`
	Items []NavLink `json:"items" yaml:"items"`
}

// SocialLink is an external profile link rendered as an icon.
type SocialLink struct {
	Icon string `json:"icon" yaml:"icon"`
	Link string `json:"link" yaml:"link"`
}

// New copies the given sections into a Site and validates it.
func New(meta SiteMeta, nav []NavItem, sidebar []SidebarGroup, social []SocialLink) (*Site, error) {
	s := &Site{
		Title:       meta.Title,
		Description: meta.Description,
		ThemeConfig: ThemeConfig{
			Nav:         copyNav(nav),
			Sidebar:     copySidebar(sidebar),
			SocialLinks: append(make([]SocialLink, 0, len(social)), social...),
		},
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Meta returns the title and description.
func (s *Site) Meta() SiteMeta {
	return SiteMeta{Title: s.Title, Description: s.Description}
}

// Clone returns a deep copy of s.
func (s *Site) Clone() *Site {
	if s == nil {
		return nil
	}
	return &Site{
		Title:       s.Title,
		Description: s.Description,
		ThemeConfig: ThemeConfig{
			Nav:         copyNav(s.ThemeConfig.Nav),
			Sidebar:     copySidebar(s.ThemeConfig.Sidebar),
			SocialLinks: append(make([]SocialLink, 0, len(s.ThemeConfig.SocialLinks)), s.ThemeConfig.SocialLinks...),
		},
	}
}

// Sections are never nil after a copy so they serialize as [] rather than
// null. Leaf nav entries keep nil Items, matching what a decoder produces.
func copyNav(nav []NavItem) []NavItem {
	out := make([]NavItem, len(nav))
	for i, n := range nav {
		out[i] = NavItem{Text: n.Text, Link: n.Link}
		if n.Items != nil {
			out[i].Items = append(make([]NavLink, 0, len(n.Items)), n.Items...)
		}
	}
	return out
}

func copySidebar(groups []SidebarGroup) []SidebarGroup {
	out := make([]SidebarGroup, len(groups))
	for i, g := range groups {
		out[i] = SidebarGroup{Text: g.Text, Items: append(make([]NavLink, 0, len(g.Items)), g.Items...)}
	}
	return out
}
