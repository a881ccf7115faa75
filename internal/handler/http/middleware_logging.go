package http

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/coserv/internal/logger"
)

// accessRecord describes one completed request.
type accessRecord struct {
	start      time.Time
	duration   time.Duration
	remoteAddr string
	method     string
	uri        string
	proto      string
	referer    string
	userAgent  string
	status     int
	size       int
}

type accessFormatter func(rec accessRecord) string

const clfTime = "02/Jan/2006:15:04:05 -0700"

// accessFormats are the text access log formats, named after the classic
// Apache and morgan formats.
var accessFormats = map[string]accessFormatter{
	"combined": func(rec accessRecord) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %s "%s" "%s"`,
			rec.remoteAddr, rec.start.Format(clfTime), rec.method, rec.uri, rec.proto,
			rec.status, rec.sizeField(), dash(rec.referer), dash(rec.userAgent))
	},
	"common": func(rec accessRecord) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %s`,
			rec.remoteAddr, rec.start.Format(clfTime), rec.method, rec.uri, rec.proto,
			rec.status, rec.sizeField())
	},
	"short": func(rec accessRecord) string {
		return fmt.Sprintf(`%s - %s %s %s %d %s - %s ms`,
			rec.remoteAddr, rec.method, rec.uri, rec.proto, rec.status, rec.sizeField(), rec.millis())
	},
	"tiny": func(rec accessRecord) string {
		return fmt.Sprintf(`%s %s %d %s - %s ms`,
			rec.method, rec.uri, rec.status, rec.sizeField(), rec.millis())
	},
	"dev": func(rec accessRecord) string {
		return fmt.Sprintf("%s %s \x1b[%dm%d\x1b[0m %s ms - %s",
			rec.method, rec.uri, statusColor(rec.status), rec.status, rec.millis(), rec.sizeField())
	},
}

// withAccessLog logs every request once it completed. The "json" format is
// written through the request logger, the text formats to out.
func withAccessLog(format string, out io.Writer) func(http.Handler) http.Handler {
	write := accessWriter(format, out)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			uri := r.RequestURI

			lw := &responseWriter{
				ResponseWriter: w,
			}

			next.ServeHTTP(lw, r)

			write(r, accessRecord{
				start:      start,
				duration:   time.Since(start),
				remoteAddr: remoteHost(r.RemoteAddr),
				method:     r.Method,
				uri:        uri,
				proto:      r.Proto,
				referer:    r.Referer(),
				userAgent:  r.UserAgent(),
				status:     lw.statusCode(),
				size:       lw.size,
			})
		})
	}
}

func accessWriter(format string, out io.Writer) func(r *http.Request, rec accessRecord) {
	formatter, ok := accessFormats[format]
	if !ok {
		return func(r *http.Request, rec accessRecord) {
			logger.FromRequest(r).Info().
				Str("uri", rec.uri).
				Str("method", rec.method).
				Str("remote_addr", rec.remoteAddr).
				Int("status", rec.status).
				Dur("duration", rec.duration).
				Int("size", rec.size).
				Send()
		}
	}

	var mu sync.Mutex
	return func(_ *http.Request, rec accessRecord) {
		line := formatter(rec) + "\n"
		mu.Lock()
		defer mu.Unlock()
		_, _ = io.WriteString(out, line)
	}
}

func (rec accessRecord) sizeField() string {
	if rec.size == 0 {
		return "-"
	}
	return strconv.Itoa(rec.size)
}

func (rec accessRecord) millis() string {
	return strconv.FormatFloat(float64(rec.duration)/float64(time.Millisecond), 'f', 3, 64)
}

func statusColor(status int) int {
	switch {
	case status >= 500:
		return 31
	case status >= 400:
		return 33
	case status >= 300:
		return 36
	case status >= 200:
		return 32
	default:
		return 0
	}
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
