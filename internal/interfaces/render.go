package interfaces

// QRImageRenderer rasterizes a payload URL into an image (Adapter/QRImage).
type QRImageRenderer interface {
	Render(payloadURL string, size int) ([]byte, error)
}
