package motion

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DecodeGroupProps decodes loosely typed props, as a page component or a
// YAML scene would supply them, into a validated GroupConfig.
func DecodeGroupProps(props map[string]any) (GroupConfig, error) {
	var cfg GroupConfig
	if err := decodeProps(props, &cfg); err != nil {
		return GroupConfig{}, err
	}
	return cfg, cfg.Validate()
}

// DecodeTextProps decodes props into a validated TextConfig.
func DecodeTextProps(props map[string]any) (TextConfig, error) {
	var cfg TextConfig
	if err := decodeProps(props, &cfg); err != nil {
		return TextConfig{}, err
	}
	return cfg, cfg.Validate()
}

// DecodeBorderProps decodes props into a validated BorderConfig. Numeric
// durations are milliseconds; strings use time.ParseDuration syntax.
func DecodeBorderProps(props map[string]any) (BorderConfig, error) {
	cfg := BorderConfig{Duration: DefaultRevolution}
	if err := decodeProps(props, &cfg); err != nil {
		return BorderConfig{}, err
	}
	return cfg, cfg.Validate()
}

func decodeProps(props map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			enumHook,
			durationHook,
			colorHook,
			radiiHook,
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(props); err != nil {
		return &ConfigError{Field: "props", Err: fmt.Errorf("%w: %v", ErrInvalidConfig, err)}
	}
	return nil
}

var (
	behaviorType  = reflect.TypeOf(BehaviorMode(0))
	splitType     = reflect.TypeOf(SplitMode(0))
	directionType = reflect.TypeOf(Direction(0))
	durationType  = reflect.TypeOf(time.Duration(0))
	colorType     = reflect.TypeOf(Color{})
	radiiType     = reflect.TypeOf(CornerRadii{})
)

// enumHook maps enum names to their typed values.
func enumHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	s := reflect.ValueOf(data).String()
	switch to {
	case behaviorType:
		return ParseBehaviorMode(s)
	case splitType:
		return ParseSplitMode(s)
	case directionType:
		return ParseDirection(s)
	}
	return data, nil
}

// durationHook reads numbers as milliseconds and strings as Go durations.
func durationHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return time.ParseDuration(v)
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	}
	return data, nil
}

// colorHook reads "#rrggbb" and "#rrggbbaa" strings.
func colorHook(from, to reflect.Type, data any) (any, error) {
	if to != colorType || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseHexColor(reflect.ValueOf(data).String())
}

// radiiHook reads a single number as a uniform radius.
func radiiHook(from, to reflect.Type, data any) (any, error) {
	if to != radiiType {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return UniformRadii(float64(v)), nil
	case float64:
		return UniformRadii(v), nil
	}
	return data, nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, &ConfigError{Field: "color", Value: s, Err: ErrInvalidConfig}
	}
	if len(h) == 6 {
		h += "ff"
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, &ConfigError{Field: "color", Value: s, Err: ErrInvalidConfig}
	}
	return Color{
		R: float64(n>>24&0xff) / 255,
		G: float64(n>>16&0xff) / 255,
		B: float64(n>>8&0xff) / 255,
		A: float64(n&0xff) / 255,
	}, nil
}
