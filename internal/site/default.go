package site

import (
	"sync"

	"github.com/Bitlatte/sitenav/internal/model"
)

var defaultSite = sync.OnceValues(func() (*model.Site, error) {
	return model.New(
		model.SiteMeta{
			Title:       "Apuntes",
			Description: "Documentación y apuntes de desarrollo web",
		},
		[]model.NavItem{
			{Text: "Home", Link: "/"},
			{Text: "Docs", Link: "/docs/es/"},
			{Text: "Idioma", Items: []model.NavLink{
				{Text: "Español", Link: "/docs/es/"},
				{Text: "English", Link: "/docs/en/"},
			}},
		},
		[]model.SidebarGroup{
			{Text: "Angular", Items: []model.NavLink{
				{Text: "Básico", Link: "/docs/es/angular/basic"},
				{Text: "Intermedio", Link: "/docs/es/angular/intermediate"},
				{Text: "Avanzado", Link: "/docs/es/angular/advanced"},
			}},
			{Text: "TypeScript", Items: []model.NavLink{
				{Text: "Tipos", Link: "/docs/es/typescript/types"},
				{Text: "Genéricos", Link: "/docs/es/typescript/generics"},
			}},
			{Text: "Sql", Items: []model.NavLink{
				{Text: "Consultas", Link: "/docs/es/sql/queries"},
				{Text: "Joins", Link: "/docs/es/sql/joins"},
				{Text: "Índices", Link: "/docs/es/sql/indexes"},
			}},
			{Text: "Git", Items: []model.NavLink{
				{Text: "Comandos", Link: "/docs/es/git/commands"},
				{Text: "Ramas", Link: "/docs/es/git/branches"},
			}},
		},
		[]model.SocialLink{
			{Icon: "github", Link: "https://github.com/Bitlatte/sitenav"},
		},
	)
})

// Default returns the built-in site configuration. It is constructed once per
// process; every caller gets its own copy.
func Default() (*model.Site, error) {
	s, err := defaultSite()
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}
