// Package web 内嵌的页面模板与静态资源
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"

	"github.com/d60-Lab/yatube/internal/model"
)

//go:embed templates static
var files embed.FS

// Static 返回 static 目录
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer 每个页面独立一套模板（layout + includes + 页面），实现 gin 的 render.HTMLRender
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer mediaPrefix 形如 "/media/"，用于拼接上传文件地址
func NewRenderer(mediaPrefix string) (*Renderer, error) {
	shared, err := template.New("").Funcs(Funcs(mediaPrefix)).ParseFS(files,
		"templates/layout/*.tmpl", "templates/includes/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages, err := fs.Glob(files, "templates/pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := shared.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(files, p); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		r.pages[path.Base(p)] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		panic(fmt.Sprintf("template %q not found", name))
	}
	return render.HTML{Template: t, Name: "base", Data: data}
}

// Funcs 模板函数
func Funcs(mediaPrefix string) template.FuncMap {
	return template.FuncMap{
		"media": func(key string) string {
			if key == "" {
				return ""
			}
			return mediaPrefix + key
		},
		"avatar": func(p *model.UserProfile) string { return p.AvatarURL(mediaPrefix) },
		"date":   func(t time.Time) string { return t.Format("2 January 2006") },
		"linebreaks": func(s string) template.HTML {
			return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
		},
		"truncatewords": func(s string, n int) string {
			words := strings.Fields(s)
			if len(words) <= n {
				return s
			}
			return strings.Join(words[:n], " ") + " …"
		},
		"fielderr":   func(errs map[string]string, field string) string { return errs[field] },
		"isSelected": func(id *uint64, groupID uint64) bool { return id != nil && *id == groupID },
	}
}
