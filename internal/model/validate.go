package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ConfigurationError describes one malformed entry. Path locates the entry
// using the renderer's key names, e.g. themeConfig.sidebar[3].items[0].
type ConfigurationError struct {
	Path   string
	Label  string
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	if e.Label != "" {
		fmt.Fprintf(&b, " %q", e.Label)
	}
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

var knownIcons = map[string]bool{
	"discord":   true,
	"facebook":  true,
	"github":    true,
	"instagram": true,
	"linkedin":  true,
	"mastodon":  true,
	"npm":       true,
	"slack":     true,
	"twitter":   true,
	"x":         true,
	"youtube":   true,
}

// KnownIcon reports whether name is an icon identifier the renderer ships with.
func KnownIcon(name string) bool {
	return knownIcons[name]
}

// Validate checks every entry and returns all violations joined together, or
// nil. Each joined error is a *ConfigurationError.
func (s *Site) Validate() error {
	if s == nil {
		return &ConfigurationError{Path: "$", Reason: "configuration is nil"}
	}
	v := &validator{}

	for i, n := range s.ThemeConfig.Nav {
		path := fmt.Sprintf("themeConfig.nav[%d]", i)
		v.text(path, n.Text)
		switch {
		case n.Link != "" && n.Items != nil:
			v.add(path, n.Text, "", "link and items are mutually exclusive")
		case n.Items != nil:
			if len(n.Items) == 0 {
				v.add(path, n.Text, "items", "must not be empty")
			}
			for j, it := range n.Items {
				v.leaf(fmt.Sprintf("%s.items[%d]", path, j), it)
			}
		default:
			v.link(path, n.Text, n.Link)
		}
	}

	for i, g := range s.ThemeConfig.Sidebar {
		path := fmt.Sprintf("themeConfig.sidebar[%d]", i)
		v.text(path, g.Text)
		if len(g.Items) == 0 {
			v.add(path, g.Text, "items", "must not be empty")
		}
		for j, it := range g.Items {
			v.leaf(fmt.Sprintf("%s.items[%d]", path, j), it)
		}
	}

	for i, sl := range s.ThemeConfig.SocialLinks {
		path := fmt.Sprintf("themeConfig.socialLinks[%d]", i)
		switch {
		case sl.Icon == "":
			v.add(path, "", "icon", "must not be empty")
		case !KnownIcon(sl.Icon):
			v.add(path, sl.Icon, "icon", "unknown icon")
		}
		if sl.Link == "" {
			v.add(path, sl.Icon, "link", "must not be empty")
		} else if !isAbsoluteURL(sl.Link) {
			v.add(path, sl.Icon, "link", fmt.Sprintf("%q is not an absolute URL", sl.Link))
		}
	}

	return errors.Join(v.errs...)
}

type validator struct {
	errs []error
}

func (v *validator) add(path, label, field, reason string) {
	v.errs = append(v.errs, &ConfigurationError{Path: path, Label: label, Field: field, Reason: reason})
}

func (v *validator) text(path, text string) {
	if strings.TrimSpace(text) == "" {
		v.add(path, "", "text", "must not be empty")
	}
}

func (v *validator) leaf(path string, l NavLink) {
	v.text(path, l.Text)
	v.link(path, l.Text, l.Link)
}

func (v *validator) link(path, label, link string) {
	if err := CheckLink(link); err != nil {
		v.add(path, label, "link", err.Error())
	}
}

// CheckLink reports whether link is a usable path or absolute URL.
func CheckLink(link string) error {
	if strings.TrimSpace(link) == "" {
		return errors.New("must not be empty")
	}
	if strings.ContainsAny(link, " \t\r\n") {
		return fmt.Errorf("%q contains whitespace", link)
	}
	if IsInternal(link) {
		return nil
	}
	for _, p := range []string{"./", "../", "#"} {
		if strings.HasPrefix(link, p) {
			return nil
		}
	}
	if isAbsoluteURL(link) {
		return nil
	}
	return fmt.Errorf("%q is neither a path nor an absolute URL", link)
}

// IsInternal reports whether link is a site-absolute path such as /docs/es/.
func IsInternal(link string) bool {
	return strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//")
}

func isAbsoluteURL(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" {
		return false
	}
	if u.Opaque != "" {
		return u.Scheme == "mailto"
	}
	return u.Host != ""
}
