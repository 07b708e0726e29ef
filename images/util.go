package images

import (
	"crypto/md5"
	"fmt"
)

// ComputeChecksum generates a deterministic checksum for an Image to verify idempotency.
//
// Arguments:
// - img: The Image to compute checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string.
//
// Example:
//
// ```go
//
//	checksum := ComputeChecksum(frame)
//	fmt.Printf("Frame checksum: %s\n", checksum)
//
// ```
func ComputeChecksum(img *Image) string {
	if img == nil || len(img.Pix) == 0 {
		return "empty"
	}

	hash := md5.New()
	fmt.Fprintf(hash, "%dx%d:", img.Width, img.Height)
	hash.Write(img.Pix)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
