package scoring

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// Codec converts a ScoreMap to and from its stored text form, e.g.
// {"teaching":80,"materials":90}. The stored form is not JSON: existing
// rows contain unquoted keys and values, so Decode accepts a looser grammar
// than Encode produces.
type Codec struct {
	logger *slog.Logger
}

// NewCodec returns a codec that reports skipped pairs to logger. A nil
// logger falls back to slog.Default().
func NewCodec(logger *slog.Logger) *Codec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{logger: logger}
}

// Encode renders scores with keys in ascending order so the output is stable.
func (c *Codec) Encode(scores ScoreMap) string {
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(k)
		b.WriteString(`":`)
		b.WriteString(strconv.Itoa(scores[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// Decode parses text into a ScoreMap. Empty input yields an empty map.
// Pairs that cannot be parsed are skipped with a warning and the rest of the
// map is returned; Decode never fails.
func (c *Codec) Decode(text string) ScoreMap {
	out := ScoreMap{}
	body := strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "{")
	body = strings.TrimSuffix(body, "}")
	if strings.TrimSpace(body) == "" {
		return out
	}

	for _, pair := range strings.Split(body, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			c.logger.Warn("skipping score pair without separator", "pair", pair)
			continue
		}
		key = unquote(key)
		if key == "" {
			c.logger.Warn("skipping score pair with empty key", "pair", pair)
			continue
		}
		n, err := strconv.Atoi(unquote(value))
		if err != nil {
			c.logger.Warn("skipping score pair with non-integer value", "key", key, "value", value, "error", err)
			continue
		}
		out[key] = n
	}
	return out
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
