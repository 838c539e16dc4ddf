package systems

// WindParams holds the scalar inputs of UpdateWind.
type WindParams struct {
	WindVX float32 // wind direction X in [-1, 1]
	WindVZ float32 // wind direction Z in [-1, 1]
	Decay  float32 // divisor applied to the velocity magnitude each frame, non-zero
}

// UpdateWind advances the wind texture and decays the velocity texture.
//
// For every pixel i < len(cursors) the cursor advances by one (mod
// len(samples)), the wind pixel receives the encoded wind direction in R/B
// and the sampled amplitude in A, and the velocity pixel's A channel is
// divided by Decay with truncation. G of the wind texture and R/G/B of the
// velocity texture are not touched.
func UpdateWind(wind, velocity Texture, samples []uint8, cursors []int32, p WindParams) {
	numPixels := len(cursors)
	numSamples := int32(len(samples))

	if debugChecks {
		assertf(numSamples > 0, "wind: no noise samples")
		assertf(p.Decay != 0, "wind: decay must be non-zero")
		assertf(len(wind.Pix) >= numPixels*BytesPerPixel, "wind: wind texture holds %d bytes, need %d", len(wind.Pix), numPixels*BytesPerPixel)
		assertf(len(velocity.Pix) >= numPixels*BytesPerPixel, "wind: velocity texture holds %d bytes, need %d", len(velocity.Pix), numPixels*BytesPerPixel)
	}

	// Direction is uniform across the texture
	vx := EncodeSigned(p.WindVX)
	vz := EncodeSigned(p.WindVZ)

	windPix := wind.Pix[:numPixels*BytesPerPixel]
	velPix := velocity.Pix[:numPixels*BytesPerPixel]

	for i := range cursors {
		idx := (cursors[i] + 1) % numSamples
		cursors[i] = idx

		o := i * BytesPerPixel
		windPix[o+ChannelX] = vx
		windPix[o+ChannelZ] = vz
		windPix[o+ChannelMagnitude] = samples[idx]

		velPix[o+ChannelMagnitude] = decayChannel(velPix[o+ChannelMagnitude], p.Decay)
	}
}
