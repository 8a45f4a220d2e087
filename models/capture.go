package models

// CapturedImages carries the camera shots taken during a weighing. Values
// are opaque to the engine: encoded-image strings on the way in, stored
// object URLs once the upload pipeline has run. Either side may be nil.
type CapturedImages struct {
	FrontImage *string `json:"frontImage,omitempty"`
	RearImage  *string `json:"rearImage,omitempty"`
}

// Empty reports whether no image was captured at all.
func (c *CapturedImages) Empty() bool {
	return c == nil || (c.FrontImage == nil && c.RearImage == nil)
}
