package api

import (
	"embed"
	"html/template"

	"github.com/microcosm-cc/bluemonday"

	"uncommon/models"
	"uncommon/page"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

// listingData 是 listing 頁面樣板的資料
type listingData struct {
	Page    page.Page
	Flashes []page.Notification
}

func otherMode(mode models.Mode) models.Mode {
	if mode == models.ModeAuction {
		return models.ModeBuyNow
	}
	return models.ModeAuction
}

// parseTemplate 商品描述來自外部設定，只在輸出 HTML 時經過 policy 過濾，
// JSON 快照保留原始文字
func parseTemplate(policy *bluemonday.Policy) (*template.Template, error) {
	funcs := template.FuncMap{
		"sanitizeHTML": func(s string) template.HTML {
			return template.HTML(policy.Sanitize(s))
		},
		"otherMode": otherMode,
	}
	return template.New("listing").Funcs(funcs).ParseFS(templatesFS, "templates/*.html.tmpl")
}
