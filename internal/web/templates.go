package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"user-group-app/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	// формат дат на страницах деталей и в таблицах
	displayDateFormat = "02/01/06 15:04"
	// значение input type="datetime-local"
	inputDateFormat = "2006-01-02T15:04"
)

type HTMLData struct {
	Title        string
	Path         string
	ErrorMessage string
	Sort         *model.Sort
	IsNew        bool
	Entities     any
	Entity       any
	AppUsers     []model.AppUser
}

var functions = template.FuncMap{
	"str": func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	},
	"num": func(p *int64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatInt(*p, 10)
	},
	"formatDate": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(displayDateFormat)
	},
	"inputDate": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Local().Format(inputDateFormat)
	},
	"appUserRef": func(g model.UserGroup) string {
		if id, ok := g.AppUserID(); ok {
			return strconv.FormatInt(id, 10)
		}
		return ""
	},
	"selected": func(g model.UserGroup, u model.AppUser) bool {
		id, ok := g.AppUserID()
		return ok && u.ID != nil && *u.ID == id
	},
	"sortLink": func(current *model.Sort, field string) string {
		next := model.Sort{Field: field, Order: model.ASC}
		if current != nil && current.Field == field && current.Order == model.ASC {
			next.Order = model.DESC
		}
		return "?sort=" + next.String()
	},
}

// pageSet хранит разобранные шаблоны страниц, каждую вместе с базовым layout.
type pageSet struct {
	pages map[string]*template.Template
}

var pageFiles = []string{
	"home",
	"app-user.list", "app-user.detail", "app-user.form", "app-user.delete",
	"user-group.list", "user-group.detail", "user-group.form", "user-group.delete",
}

func parsePages() (*pageSet, error) {
	ps := &pageSet{pages: make(map[string]*template.Template, len(pageFiles))}
	for _, name := range pageFiles {
		ts, err := template.New("").Funcs(functions).ParseFS(templatesFS,
			"templates/base.layout.html",
			"templates/"+name+".page.html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		ps.pages[name] = ts
	}
	return ps, nil
}

// RenderHTML рендерит страницу в буфер и только при успехе пишет её в ответ.
func (app *App) RenderHTML(w http.ResponseWriter, r *http.Request, page string, data *HTMLData, status int) {
	if data == nil {
		data = &HTMLData{}
	}
	data.Path = r.URL.Path

	ts, ok := app.pages.pages[page]
	if !ok {
		app.ServerError(w, r, fmt.Errorf("unknown page %q", page))
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		app.ServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
