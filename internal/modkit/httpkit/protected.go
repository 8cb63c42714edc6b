package httpkit

import "tjmwatch/internal/platform/net/middleware"

// Protected groups routes under the auth port
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
