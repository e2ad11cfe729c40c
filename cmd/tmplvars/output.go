package main

import (
	"compress/gzip"
	"encoding/json"
	"os"
)

// emitJSON serializes output as JSON on stdout, gzip-compressed when the
// global --compress flag is set.
func emitJSON(output any) error {
	if flagCompress {
		gz := gzip.NewWriter(os.Stdout)
		enc := json.NewEncoder(gz)
		if err := enc.Encode(output); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
