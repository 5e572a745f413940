// Package headers selects which headers cross the bridge: it splits the
// synthetic headers argument out of an NDC argument bag, glob-matches the
// forwarded header names against the configured patterns, and merges the
// result with the connection's static headers.
//
// Glob matching uses github.com/ryanuber/go-glob, lower-cased on both
// sides. Patterns support the "*" wildcard only: "?" and character classes
// are matched as literal text.
package headers

import (
	"net/http"
	"strings"

	"github.com/ryanuber/go-glob"

	"github.com/hasura/ndc-graphql/internal/ndcerror"
)

// Mapper resolves one NDC argument value (which may itself be a Variable
// reference) to the JSON value header extraction should inspect.
type Mapper func(argName string, value any) (any, error)

// IdentityMapper treats every argument value as already being a JSON
// literal, used when extracting headers from mutation procedure arguments.
func IdentityMapper(_ string, value any) (any, error) { return value, nil }

// Extract splits the headers argument out of arguments, keeping only the
// header names that glob-match a configured pattern. connectionHeaders are
// the static, always-forwarded headers from ServerConfig.Connection.Headers.
// forwardPatterns are the glob patterns from ServerConfig.Request.ForwardHeaders.
// requestArgumentsHeaders is the top-level request_arguments["headers"] map,
// merged last (authorized upstream, not subject to glob filtering).
func Extract(
	arguments map[string]any,
	headersArgumentName string,
	mapper Mapper,
	connectionHeaders map[string]string,
	forwardPatterns []string,
	requestArgumentsHeaders map[string]string,
) (outbound map[string]string, remaining map[string]any, err error) {
	outbound = make(map[string]string, len(connectionHeaders))
	for k, v := range connectionHeaders {
		outbound[k] = v
	}

	remaining = make(map[string]any, len(arguments))

	for name, rawValue := range arguments {
		if name != headersArgumentName {
			remaining[name] = rawValue
			continue
		}

		value, err := mapper(name, rawValue)
		if err != nil {
			return nil, nil, err
		}

		headerMap, ok := asStringObject(value)
		if !ok {
			return nil, nil, ndcerror.MisshapenHeadersArgument{Value: value}
		}

		for headerName, headerValue := range headerMap {
			if matchesAny(forwardPatterns, headerName) {
				outbound[headerName] = headerValue
			}
		}
	}

	for k, v := range requestArgumentsHeaders {
		outbound[k] = v
	}

	return outbound, remaining, nil
}

// asStringObject reports whether value is a JSON object whose values are
// all strings, converting it to map[string]string on success.
func asStringObject(value any) (map[string]string, bool) {
	raw, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[k] = s
	}
	return out, true
}

// matchesAny reports whether headerName matches any pattern, case
// insensitively.
func matchesAny(patterns []string, headerName string) bool {
	lowered := strings.ToLower(headerName)
	for _, pattern := range patterns {
		if glob.Glob(strings.ToLower(pattern), lowered) {
			return true
		}
	}
	return false
}

// FilterResponseHeaders glob-matches each upstream response header name
// against patterns, case insensitively, keeping the first value of every
// header that matches. The upstream client uses it to capture the subset of
// response headers that response assembly forwards to the caller.
func FilterResponseHeaders(source http.Header, patterns []string) map[string]string {
	out := map[string]string{}
	if len(patterns) == 0 {
		return out
	}
	for name, values := range source {
		if len(values) == 0 {
			continue
		}
		if matchesAny(patterns, name) {
			out[name] = values[0]
		}
	}
	return out
}
