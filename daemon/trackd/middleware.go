package trackd

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	ghandlers "github.com/gorilla/handlers"
)

// tokenAuthenticationMiddleware is a middleware that checks for a valid token in the Authorization header.
// If the token is not valid, it returns a 403 Forbidden.
// If the token is valid, it calls the next middleware (or final handler).
// If no token is set, it allows all requests.
func tokenAuthenticationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		validToken := os.Getenv("TRACKD_TOKEN")
		if validToken == "" {
			log.Printf("WARN: No TRACKD_TOKEN set, allowing all requests")
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get("Authorization")
		if token == "" {
			// Header token not set. Check alternate protocol, which is using
			// a query param with the name api_token.
			r.ParseForm()
			token = r.FormValue("api_token")
		}

		// Enforce token validation.
		if token != validToken {
			log.Println("Invalid token",
				"token:", fmt.Sprintf("%q", token),
				"method:", r.Method, "url:", r.URL, "proto:", r.Proto,
				"host:", r.Host, "remote-addr:", r.RemoteAddr,
				"content-length:", r.ContentLength,
				"user-agent:", r.UserAgent())
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		// Pass down the request to the next middleware (or final handler)
		next.ServeHTTP(w, r)
	})
}

func permissiveCorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Add("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
		next.ServeHTTP(w, r)
	})
}

func contentTypeMiddlewareFunc(contentType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentType)
			next.ServeHTTP(w, r)
		})
	}
}

// buildCommonLogLine builds a log entry for req in Apache Common Log Format.
// ts is the timestamp with which the entry should be logged.
// status and size are used to provide the response HTTP status and size.
func buildCommonLogLine(req *http.Request, url url.URL, ts time.Time, status int, size int) []byte {
	username := "-"
	if url.User != nil {
		if name := url.User.Username(); name != "" {
			username = name
		}
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	for _, v := range req.Header.Values("X-Forwarded-For") {
		host += "->" + v
	}

	uri := req.RequestURI
	if uri == "" {
		uri = url.RequestURI()
	}

	buf := make([]byte, 0, 3*(len(host)+len(username)+len(req.Method)+len(uri)+len(req.Proto)+50)/2)
	buf = append(buf, host...)
	buf = append(buf, " - "...)
	buf = append(buf, username...)
	buf = append(buf, " ["...)
	buf = append(buf, ts.Format("02/Jan/2006:15:04:05 -0700")...)
	buf = append(buf, `] `...)
	buf = strconv.AppendQuote(buf, fmt.Sprintf("%s %s %s", req.Method, uri, req.Proto))
	buf = append(buf, ' ')
	buf = append(buf, strconv.Itoa(status)...)
	buf = append(buf, ' ')
	buf = append(buf, strconv.Itoa(size)...)
	return buf
}

// writeLog writes a log entry for req to w in Apache Common Log Format.
func writeLog(writer io.Writer, params ghandlers.LogFormatterParams) {
	buf := buildCommonLogLine(params.Request, params.URL, params.TimeStamp, params.StatusCode, params.Size)
	buf = append(buf, '\n')
	_, _ = writer.Write(buf)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return ghandlers.CustomLoggingHandler(os.Stdout, next, writeLog)
}
