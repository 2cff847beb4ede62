package sammelband

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

// urlPattern accepts strings that start with an http(s) scheme, contain at
// least one dotted label, may continue with slash-prefixed segments, and end
// in a word character or a trailing slash. The "any character" runs exclude
// line terminators (\n, \r, U+2028, U+2029).
var urlPattern = regexp.MustCompile(`^https?://[^\n\r\x{2028}\x{2029}]*\.\w+(/[^\n\r\x{2028}\x{2029}]*\w|/)*$`)

// URLList is a batch of submitted URLs in submission order.
//
// It decodes from either a single JSON string or an array of strings, so a
// lone URL behaves like a one-element batch. Any other JSON value, including
// array elements that are not strings, is rejected with EINVALID.
type URLList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *URLList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if isJSONString(data) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Errorf(EINVALID, "urls: invalid string")
		}
		*l = URLList{s}
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return Errorf(EINVALID, "urls must be a string or an array of strings")
	}

	urls := make(URLList, 0, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		var s string
		if !isJSONString(elem) || json.Unmarshal(elem, &s) != nil {
			return Errorf(EINVALID, "urls[%d] is not a string", i)
		}
		urls = append(urls, s)
	}
	*l = urls
	return nil
}

func isJSONString(data []byte) bool {
	return len(data) > 0 && data[0] == '"'
}

// ClassifyURLs partitions urls into the ones acceptable for fetching and a
// report of the rejected ones.
//
// clean keeps accepted URLs in input order, duplicates included, trimmed of
// surrounding whitespace. report is the rejected URLs joined by newlines, or
// "" when every URL was accepted. The pattern is matched against the raw
// string, so whitespace-padded input is rejected rather than repaired.
//
// Rejected and accepted URLs are logged to logger, which may be nil.
func ClassifyURLs(logger *slog.Logger, urls []string) (clean []string, report string) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("classify urls", "panic", r)
			panic(r)
		}
	}()

	accepted := make(map[string]struct{}, len(urls))
	clean = make([]string, 0, len(urls))
	for _, u := range urls {
		if urlPattern.MatchString(u) {
			accepted[u] = struct{}{}
			clean = append(clean, strings.TrimSpace(u))
		}
	}

	var bad []string
	for _, u := range urls {
		if _, ok := accepted[u]; !ok {
			bad = append(bad, u)
		}
	}

	if len(bad) > 0 {
		logger.Info("bad urls", "count", len(bad), "urls", bad)
	}
	logger.Info("clean urls", "count", len(clean), "urls", clean)

	return clean, strings.Join(bad, "\n")
}
