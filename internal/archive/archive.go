// Package archive stores rendered blend-mode swatches in a single SQLite file.
package archive

import (
	"bytes"
	"compress/gzip"
	"io"
	"strconv"
)

// Metadata describes a swatch archive.
type Metadata struct {
	Name        string // Human-readable archive name
	Description string
	Version     string
	Format      string // Payload type, always "png" for now
	Gamma       string // Gamma curve the swatches were rendered with
	Size        int    // Edge length of each square swatch in pixels
}

// ToMap converts Metadata to a map for database insertion.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	if m.Name != "" {
		result["name"] = m.Name
	}
	if m.Description != "" {
		result["description"] = m.Description
	}
	if m.Version != "" {
		result["version"] = m.Version
	}
	if m.Format != "" {
		result["format"] = m.Format
	}
	if m.Gamma != "" {
		result["gamma"] = m.Gamma
	}
	if m.Size > 0 {
		result["size"] = strconv.Itoa(m.Size)
	}

	return result
}

func metadataFromMap(values map[string]string) Metadata {
	meta := Metadata{
		Name:        values["name"],
		Description: values["description"],
		Version:     values["version"],
		Format:      values["format"],
		Gamma:       values["gamma"],
	}
	if v, ok := values["size"]; ok {
		if i, err := strconv.Atoi(v); err == nil {
			meta.Size = i
		}
	}
	return meta
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)

	if _, err := gw.Write(data); err != nil {
		gw.Close()
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// gzipDecompress inflates data, or returns it unchanged when it carries no
// gzip header.
func gzipDecompress(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}

	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}
