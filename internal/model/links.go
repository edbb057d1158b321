package model

import "fmt"

// Section names the part of the theme config a link belongs to.
type Section string

const (
	SectionNav     Section = "nav"
	SectionSidebar Section = "sidebar"
	SectionSocial  Section = "socialLinks"
)

// LinkRef is one link together with where it was declared.
type LinkRef struct {
	Section Section
	Path    string
	Text    string
	Link    string
}

// Links returns every link in declaration order: nav entries (group items
// following their group), then sidebar entries, then social links.
func (s *Site) Links() []LinkRef {
	var refs []LinkRef
	for i, n := range s.ThemeConfig.Nav {
		path := fmt.Sprintf("themeConfig.nav[%d]", i)
		if !n.IsGroup() {
			refs = append(refs, LinkRef{Section: SectionNav, Path: path, Text: n.Text, Link: n.Link})
			continue
		}
		for j, it := range n.Items {
			refs = append(refs, LinkRef{
				Section: SectionNav,
				Path:    fmt.Sprintf("%s.items[%d]", path, j),
				Text:    it.Text,
				Link:    it.Link,
			})
		}
	}
	for i, g := range s.ThemeConfig.Sidebar {
		for j, it := range g.Items {
			refs = append(refs, LinkRef{
				Section: SectionSidebar,
				Path:    fmt.Sprintf("themeConfig.sidebar[%d].items[%d]", i, j),
				Text:    it.Text,
				Link:    it.Link,
			})
		}
	}
	for i, sl := range s.ThemeConfig.SocialLinks {
		refs = append(refs, LinkRef{
			Section: SectionSocial,
			Path:    fmt.Sprintf("themeConfig.socialLinks[%d]", i),
			Text:    sl.Icon,
			Link:    sl.Link,
		})
	}
	return refs
}

// Duplicate is a label that appears more than once in one sibling list.
type Duplicate struct {
	Path  string // the sibling list, e.g. themeConfig.sidebar[0].items
	Label string
	Count int
}

func (d Duplicate) String() string {
	return fmt.Sprintf("%s: label %q appears %d times", d.Path, d.Label, d.Count)
}

// DuplicateLabels finds repeated labels among siblings. Repeats are allowed
// but make the navigation ambiguous, so callers usually warn about them.
func (s *Site) DuplicateLabels() []Duplicate {
	var dups []Duplicate

	nav := make([]string, len(s.ThemeConfig.Nav))
	for i, n := range s.ThemeConfig.Nav {
		nav[i] = n.Text
		if n.IsGroup() {
			dups = append(dups, duplicates(fmt.Sprintf("themeConfig.nav[%d].items", i), leafLabels(n.Items))...)
		}
	}
	dups = append(dups, duplicates("themeConfig.nav", nav)...)

	groups := make([]string, len(s.ThemeConfig.Sidebar))
	for i, g := range s.ThemeConfig.Sidebar {
		groups[i] = g.Text
		dups = append(dups, duplicates(fmt.Sprintf("themeConfig.sidebar[%d].items", i), leafLabels(g.Items))...)
	}
	dups = append(dups, duplicates("themeConfig.sidebar", groups)...)
	return dups
}

func leafLabels(items []NavLink) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

// duplicates reports labels in first-seen order.
func duplicates(path string, labels []string) []Duplicate {
	counts := make(map[string]int, len(labels))
	var order []string
	for _, l := range labels {
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}
	var out []Duplicate
	for _, l := range order {
		if counts[l] > 1 {
			out = append(out, Duplicate{Path: path, Label: l, Count: counts[l]})
		}
	}
	return out
}
