package practice

import (
	"log"
	"net/http"
	"time"
)

// HTTPLogger logs status, latency, method, and path for each request.
func HTTPLogger(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		initialTime := time.Now()
		method := r.Method
		path := r.URL.String()
		wr := newStatusRecorder(w)
		handler.ServeHTTP(wr, r)
		log.Printf("http: time:%dms %d %s %s", time.Since(initialTime)/time.Millisecond, wr.status, method, path)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
