package config

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"code.cloudfoundry.org/bytefmt"
	"gopkg.in/yaml.v3"
)

const (
	Second = time.Second
	Minute = time.Minute
	Hour   = time.Hour
	Day    = 24 * Hour
	Week   = 7 * Day
	Month  = 30 * Day
	Year   = 365 * Day
)

var (
	durationExpr = regexp.MustCompile(`^` +
		`(?:(?P<year>[0-9]+)Y)?\s*` +
		`(?:(?P<month>[0-9]+)M)?\s*` +
		`(?:(?P<week>[0-9]+)[wW])?\s*` +
		`(?:(?P<day>[0-9]+)[dD])?\s*` +
		`(?:(?P<hour>[0-9]+)h)?\s*` +
		`(?:(?P<minute>[0-9]+)m)?\s*` +
		`(?:(?P<second>[0-9]+)s)?$`)

	durationUnits = []time.Duration{Year, Month, Week, Day, Hour, Minute, Second}

	envExpr = regexp.MustCompile(`__\$\{(\w+)\}__`)
)

// Raw is an untyped YAML mapping with typed accessors.
type Raw map[string]any

// ParseFromString unmarshals a YAML document held in a string.
func ParseFromString(content string) (Raw, error) {
	return Parse(strings.NewReader(content))
}

// Parse decodes one YAML document. An empty document yields an empty Raw.
func Parse(reader io.Reader) (Raw, error) {
	var out map[string]any
	if err := yaml.NewDecoder(reader).Decode(&out); err != nil {
		if err == io.EOF {
			return Raw{}, nil
		}
		return nil, err
	}
	return out, nil
}

// Sub returns the mapping stored under key, or nil if there is none.
func (c Raw) Sub(key string) Raw {
	switch v := c[key].(type) {
	case map[string]any:
		return v
	case Raw:
		return v
	case map[any]any:
		sub := Raw{}
		for k, elem := range v {
			if s, ok := k.(string); ok {
				sub[s] = elem
			}
		}
		return sub
	}
	return nil
}

// Keys returns the mapping's keys in no particular order.
func (c Raw) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	return keys
}

func (c Raw) Has(key string) bool {
	_, exists := c[key]
	return exists
}

// String returns the value as string, with `__${VAR}__` placeholders replaced
// by the environment.
func (c Raw) String(key string) string {
	return interpolate(asString(c[key]))
}

func (c Raw) Bool(key string) bool {
	switch v := c[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(interpolate(v))
		return err == nil && b
	}
	return false
}

func (c Raw) Int64(key string) int64 {
	i, _ := asInt64(c[key])
	return i
}

func (c Raw) Uint64(key string) uint64 {
	i, ok := asInt64(c[key])
	if !ok || i < 0 {
		return 0
	}
	return uint64(i)
}

// Bytes accepts plain numbers or human readable sizes like "64KB" or "1 GiB".
func (c Raw) Bytes(key string) uint64 {
	s, ok := c[key].(string)
	if !ok {
		return c.Uint64(key)
	}

	s = strings.ToUpper(strings.ReplaceAll(interpolate(s), " ", ""))
	if strings.IndexFunc(s, unicode.IsLetter) >= 0 {
		bytes, err := bytefmt.ToBytes(s)
		if err != nil {
			return 0
		}
		return bytes
	}

	parsed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// Duration parses values like "1d 12h" or "30s". Plain numbers count days.
func (c Raw) Duration(key string) time.Duration {
	val := c[key]
	s, ok := val.(string)
	if !ok {
		return Day * time.Duration(c.Uint64(key))
	}

	match := durationExpr.FindStringSubmatch(strings.TrimSpace(interpolate(s)))
	if match == nil {
		return 0
	}

	duration := time.Duration(0)
	// match[0] is the whole expression
	for i, unit := range durationUnits {
		duration += unit * asDuration(match[i+1])
	}
	return duration
}

func asDuration(val string) time.Duration {
	i, err := strconv.ParseUint(val, 10, 63)
	if err != nil {
		return 0
	}
	return time.Duration(i)
}

func asString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", val)
}

func asInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case string:
		i, err := strconv.ParseInt(interpolate(v), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func interpolate(s string) string {
	return envExpr.ReplaceAllStringFunc(s, func(placeholder string) string {
		return os.Getenv(envExpr.FindStringSubmatch(placeholder)[1])
	})
}
