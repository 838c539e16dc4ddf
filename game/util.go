package game

// referenceFrameSec is the frame time the particle constants are tuned for.
const referenceFrameSec = 1.0 / 60.0

// DtFactor returns dt relative to a 60 Hz frame, never below 1.
func DtFactor(dt float32) float32 {
	return max(dt/referenceFrameSec, 1)
}
