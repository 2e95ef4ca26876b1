// artcom-pay/internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter wires every route. Function routes accept all methods so the
// handler itself answers OPTIONS and 405.
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware(d.Log), recoverMiddleware(d.Log), metricsMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", HealthHandler(d)).Methods(http.MethodGet)

	fn := FunctionHandler(d)
	r.HandleFunc("/.netlify/functions/midtrans-token", fn)
	r.HandleFunc("/api/payments", fn)
	r.HandleFunc("/.netlify/functions/payment-charge", ChargeHandler(d))

	c := cors.New(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{http.MethodPost, http.MethodOptions, http.MethodGet, http.MethodPut, http.MethodDelete},
		AllowedHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin", "X-Request-ID"},
		ExposedHeaders:     []string{"X-Request-ID"},
		MaxAge:             86400,
		OptionsPassthrough: true,
	})
	return c.Handler(r)
}

func HealthHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":               true,
			"service":          serviceName,
			"function_version": d.FunctionVersion,
			"ts":               d.now().UTC(),
		})
	}
}
