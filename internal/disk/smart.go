package disk

import (
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ParseSmartStatus turns smartctl output into a key/value map.
// Every line containing ':' is split at the first ':' and both sides trimmed.
// Lines with an empty key are skipped; a repeated key keeps its last value.
func ParseSmartStatus(out string) map[string]string {
	status := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		status[key] = strings.TrimSpace(value)
	}
	return status
}

// DecodeSmartSummary picks the well-known keys out of a parsed SMART map.
func DecodeSmartSummary(status map[string]string) SmartSummary {
	var summary SmartSummary
	if len(status) == 0 {
		return summary
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &summary,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return summary
	}
	// Values are all strings, so decoding cannot fail on type mismatches.
	_ = decoder.Decode(status)
	return summary
}
