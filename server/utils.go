package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

func unknownRoomIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown room ID '%s'", unknownID)
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Error("could not marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

// originChecker accepts requests without an Origin header, which browsers
// always send, so non-browser clients can connect
func originChecker(allowed []string) func(r *http.Request) bool {
	anyOrigin := false
	set := map[string]bool{}
	for _, o := range allowed {
		if o == "*" {
			anyOrigin = true
		}
		set[strings.ToLower(strings.TrimSuffix(o, "/"))] = true
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if anyOrigin || origin == "" {
			return true
		}
		return set[strings.ToLower(origin)]
	}
}

type recoveryLogger struct {
	log *zap.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("recovered from panic", zap.String("panic", fmt.Sprint(v...)))
}

func accessLogFormatter(log *zap.Logger) handlers.LogFormatter {
	return func(_ io.Writer, p handlers.LogFormatterParams) {
		log.Info("request",
			zap.String("method", p.Request.Method),
			zap.String("path", p.URL.Path),
			zap.Int("status", p.StatusCode),
			zap.Int("size", p.Size),
			zap.Time("ts", p.TimeStamp),
			zap.String("remote", p.Request.RemoteAddr),
		)
	}
}
