package interfaces

import (
	"net/http"
	"strings"
)

// WithCORS 为路由加上宽松的跨域策略，并直接应答预检请求。
// methods 为该路由允许的业务方法，OPTIONS 会被自动加入。
func WithCORS(next http.Handler, methods ...string) http.Handler {
	allowed := strings.Join(append(methods, http.MethodOptions), ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", allowed)
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		for _, m := range methods {
			if r.Method == m {
				next.ServeHTTP(w, r)
				return
			}
		}
		h.Set("Allow", allowed)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
}
