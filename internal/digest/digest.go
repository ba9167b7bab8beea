package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/spectree/toolaudit/internal/audit"
)

func HashString(input string) string {
	return HashBytes([]byte(input))
}

func HashBytes(input []byte) string {
	hash := sha256.Sum256(input)
	return hex.EncodeToString(hash[:])
}

// HashFiles fingerprints a set of input files independent of their order.
func HashFiles(files []audit.File) string {
	sorted := make([]audit.File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Label < sorted[j].Label
	})

	h := sha256.New()
	for _, file := range sorted {
		h.Write([]byte(file.Label))
		h.Write([]byte{0})
		h.Write([]byte(HashString(file.Text)))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
