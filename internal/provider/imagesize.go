package provider

// ImageSize is a coarse semantic image-resolution class.
type ImageSize string

// Image size buckets, ordered by increasing height.
const (
	SizeXS ImageSize = "XS"
	SizeS  ImageSize = "S"
	SizeM  ImageSize = "M"
	SizeL  ImageSize = "L"
)

// ClassifyImageHeight maps a pixel height to its size bucket. The function is
// total over non-negative heights: every height lands in exactly one bucket.
func ClassifyImageHeight(height int) ImageSize {
	switch {
	case height < 100:
		return SizeXS
	case height < 200:
		return SizeS
	case height < 500:
		return SizeM
	default:
		return SizeL
	}
}
