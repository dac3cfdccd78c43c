package registry

import (
	"bytes"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// fence delimits the header block at the top of a record file.
const fence = "---"

// RecordFileName is the record file inside each module directory.
const RecordFileName = "module.md"

// MarshalRecord renders a module to its on-disk record form: a YAML header
// between fences followed by the payload.
func MarshalRecord(m *Module) ([]byte, error) {
	header, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling module header: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	buf.Write(header)
	buf.WriteString(fence + "\n")
	buf.WriteString(m.Payload)
	return buf.Bytes(), nil
}

// ParseRecord parses a record file into a module. The header block is
// required and must be valid YAML; everything after the closing fence is
// kept verbatim as the payload.
func ParseRecord(data []byte) (*Module, error) {
	header, payload, err := splitRecord(data)
	if err != nil {
		return nil, err
	}

	var m Module
	if err := yaml.Unmarshal(header, &m); err != nil {
		return nil, fmt.Errorf("parsing module header: %w", err)
	}
	m.Payload = payload

	return &m, nil
}

// splitRecord separates the fenced header block from the payload.
func splitRecord(data []byte) (header []byte, payload string, err error) {
	text := string(data)

	rest, ok := strings.CutPrefix(text, fence+"\n")
	if !ok {
		return nil, "", fmt.Errorf("record missing opening %q fence", fence)
	}

	idx := strings.Index(rest, "\n"+fence+"\n")
	if idx < 0 {
		// A record may end at the closing fence with no payload.
		if trimmed, ok := strings.CutSuffix(rest, "\n"+fence); ok {
			return []byte(trimmed + "\n"), "", nil
		}
		return nil, "", fmt.Errorf("record missing closing %q fence", fence)
	}

	header = []byte(rest[:idx+1])
	payload = rest[idx+len("\n"+fence+"\n"):]
	return header, payload, nil
}
