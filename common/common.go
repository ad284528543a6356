package common

import (
	"os"
	"path/filepath"
	"strings"
)

//path of a named chart or table inside the output directory
func ArtifactPath(outdir, name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return filepath.Join(outdir, name)
	}
	return filepath.Join(outdir, name+"."+ext)
}

func MakeOutputDir(dir string) error {
	return os.MkdirAll(dir, 0775)
}

//presentation label of a protocol
func ProtocolLabel(protocol string) string {
	return strings.ToUpper(protocol)
}
