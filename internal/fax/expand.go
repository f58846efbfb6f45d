package fax

// Expand unpacks height rows of 1-bit pixels into one byte per pixel. With
// minIsBlack false white becomes 0 and black 255; with minIsBlack true the
// polarity is reversed. dst must hold width*height bytes.
func Expand(packed []byte, width, height, pitch int, minIsBlack bool, dst []byte) {
	var white, black byte = 0, 255
	if minIsBlack {
		white, black = 255, 0
	}
	for y := 0; y < height; y++ {
		row := packed[y*pitch:]
		out := dst[y*width : (y+1)*width]
		for x := range out {
			if row[x/8]&(0x80>>(x%8)) != 0 {
				out[x] = white
			} else {
				out[x] = black
			}
		}
	}
}
