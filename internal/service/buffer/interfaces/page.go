package interfaces

import (
	"html/template"
	"net/http"
	"time"

	"jhpcic/internal/pkg/logger"
	"jhpcic/internal/service/buffer"
)

var pageTmpl = template.Must(template.New("buffer").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if .Target}}
<meta http-equiv="refresh" content="{{.Seconds}};url={{.Target}}">
{{- end}}
<title>授权登录</title>
</head>
<body>
<header><h1>授权登录</h1></header>
<main>
<h2>正在安全跳转</h2>
<p>您正在进入由中国人寿财产保险股份有限公司提供的服务页面，请稍候...</p>
<p>平台已加密保护</p>
</main>
<footer><p>Copyright © China Life Property &amp; Casualty Insurance Company Limited</p></footer>
</body>
</html>
`))

type pageData struct {
	Target  string
	Seconds int
}

// BufferHandler 渲染扫码落地的过渡页，延时后跳转到签约向导
type BufferHandler struct {
	delay time.Duration
}

func NewBufferHandler(delay time.Duration) *BufferHandler {
	if delay <= 0 {
		delay = buffer.Delay
	}
	return &BufferHandler{delay: delay}
}

// RegisterRoutes 注册 /buffer
func (h *BufferHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /buffer", h.handleBuffer)
}

func (h *BufferHandler) handleBuffer(w http.ResponseWriter, r *http.Request) {
	data := pageData{Seconds: int(h.delay / time.Second)}
	if target, ok := buffer.Target(r.URL.Query()); ok {
		data.Target = target
	} else {
		// 没有记录引用时停留在本页
		logger.Ctx(r.Context()).Warn().Msg("Buffer page opened without id or data")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTmpl.Execute(w, data); err != nil {
		logger.Ctx(r.Context()).Error().Err(err).Msg("Failed to render buffer page")
	}
}
