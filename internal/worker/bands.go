package worker

import "image"

// Bands splits bounds into at most n horizontal bands of near-equal height.
// Empty bounds yield no bands.
func Bands(bounds image.Rectangle, n int) []image.Rectangle {
	h := bounds.Dy()
	if h <= 0 || bounds.Dx() <= 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}
	n = min(n, h)

	bands := make([]image.Rectangle, 0, n)
	y := bounds.Min.Y
	for i := 0; i < n; i++ {
		rows := h / n
		if i < h%n {
			rows++
		}
		bands = append(bands, image.Rect(bounds.Min.X, y, bounds.Max.X, y+rows))
		y += rows
	}
	return bands
}
