package images

import (
	"crypto/md5"
	"fmt"
)

// ComputeChecksum generates a deterministic checksum of an image's dimensions
// and pixels, used to verify that repeated filter runs are byte-identical.
//
// Arguments:
// - img: The image to compute checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string.
//
// Example:
//
// ```go
//
//	checksum := ComputeChecksum(out)
//	fmt.Printf("Output checksum: %s\n", checksum)
//
// ```
func ComputeChecksum(img *Image) string {
	if img == nil || len(img.Data) == 0 {
		return "empty"
	}

	hash := md5.New()
	fmt.Fprintf(hash, "%dx%d:", img.Width, img.Height)
	hash.Write(img.Data)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
