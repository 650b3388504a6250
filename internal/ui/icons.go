package ui

// GetIcon returns the icon data for the given state
func GetIcon(state string) []byte {
	switch state {
	case "active":
		return GenerateShieldIcon(30, 200, 90) // Green
	case "error":
		return GenerateShieldIcon(220, 55, 55) // Red
	default:
		return GenerateShieldIcon(160, 160, 160) // Gray (inactive)
	}
}

// GenerateShieldIcon renders a heraldic shield with a check mark at 32x32
// with transparent background
func GenerateShieldIcon(cr, cg, cb byte) []byte {
	const size = 32
	pixels := make([]byte, size*size*4)

	setPx := func(x, y int, r, g, b, a byte) {
		if x < 0 || x >= size || y < 0 || y >= size {
			return
		}
		off := ((size-1-y)*size + x) * 4
		ea := float64(pixels[off+3]) / 255.0
		na := float64(a) / 255.0
		oa := na + ea*(1-na)
		if oa > 0 {
			pixels[off+0] = byte((float64(b)*na + float64(pixels[off+0])*ea*(1-na)) / oa)
			pixels[off+1] = byte((float64(g)*na + float64(pixels[off+1])*ea*(1-na)) / oa)
			pixels[off+2] = byte((float64(r)*na + float64(pixels[off+2])*ea*(1-na)) / oa)
			pixels[off+3] = byte(oa * 255)
		}
	}

	abs := func(v float64) float64 {
		if v < 0 {
			return -v
		}
		return v
	}

	// Dark variant for the check mark and border
	var dr, dg, db byte
	lum := int(cr)*299 + int(cg)*587 + int(cb)*114
	if lum > 128000 {
		dr, dg, db = 40, 40, 40
	} else {
		dr, dg, db = cr/3, cg/3, cb/3
	}

	cx := 15.5

	// Half-width of the shield at a given row: flat shoulders up top,
	// then curving in to a point at the bottom.
	shieldHalfW := func(y int) float64 {
		fy := float64(y)
		switch {
		case fy < 2 || fy > 29:
			return 0
		case fy <= 14:
			return 12.0
		default:
			t := (fy - 14) / 15.0
			w := 12.0 * (1 - t*t)
			if w < 0.5 {
				w = 0.5
			}
			return w
		}
	}

	// ======== 1. Shield body ========
	for y := 2; y <= 29; y++ {
		halfW := shieldHalfW(y)
		for x := 0; x < size; x++ {
			fx := float64(x) + 0.5
			d := abs(fx - cx)
			if d <= halfW {
				a := byte(255)
				if d > halfW-1.0 {
					a = byte((halfW - d) * 255)
				}
				setPx(x, y, cr, cg, cb, a)
			}
		}
	}

	// ======== 2. Check mark ========
	// Short stroke down-right, long stroke up-right
	for i := 0; i <= 10; i++ {
		t := float64(i) / 10.0
		x := 9.0 + 4.0*t
		y := 13.0 + 4.0*t
		for dy := -1; dy <= 1; dy++ {
			a := byte(255)
			if dy != 0 {
				a = 160
			}
			setPx(int(x), int(y)+dy, dr, dg, db, a)
		}
	}
	for i := 0; i <= 20; i++ {
		t := float64(i) / 20.0
		x := 13.0 + 9.0*t
		y := 17.0 - 8.0*t
		for dy := -1; dy <= 1; dy++ {
			a := byte(255)
			if dy != 0 {
				a = 160
			}
			setPx(int(x), int(y)+dy, dr, dg, db, a)
		}
	}

	// ======== 3. Shield border ========
	for y := 2; y <= 29; y++ {
		halfW := shieldHalfW(y)
		if halfW <= 0 {
			continue
		}
		lBorder := int(cx - halfW + 0.5)
		rBorder := int(cx + halfW - 0.5)
		setPx(lBorder, y, dr, dg, db, 160)
		setPx(rBorder, y, dr, dg, db, 160)
	}
	for x := 0; x < size; x++ {
		fx := float64(x) + 0.5
		if abs(fx-cx) <= 12.0 {
			setPx(x, 2, dr, dg, db, 160)
		}
	}

	return buildICO(size, pixels)
}

// buildICO creates a valid ICO file from BGRA pixel data
func buildICO(size int, pixels []byte) []byte {
	const dibHeaderSize = 40
	pixelDataSize := size * size * 4
	maskRowSize := ((size + 31) / 32) * 4
	maskSize := maskRowSize * size
	imageDataSize := dibHeaderSize + pixelDataSize + maskSize
	headerSize := 6 + 16

	buf := make([]byte, 0, headerSize+imageDataSize)

	// ICONDIR
	buf = append(buf, 0, 0)
	buf = append(buf, 1, 0) // ICO type
	buf = append(buf, 1, 0) // 1 image

	// ICONDIRENTRY
	buf = append(buf, byte(size))
	buf = append(buf, byte(size))
	buf = append(buf, 0)     // No palette
	buf = append(buf, 0)     // Reserved
	buf = append(buf, 1, 0)  // Planes
	buf = append(buf, 32, 0) // BPP

	imgSize := uint32(imageDataSize)
	buf = append(buf, byte(imgSize), byte(imgSize>>8), byte(imgSize>>16), byte(imgSize>>24))
	off := uint32(headerSize)
	buf = append(buf, byte(off), byte(off>>8), byte(off>>16), byte(off>>24))

	// BITMAPINFOHEADER
	buf = append(buf, 40, 0, 0, 0)
	buf = append(buf, byte(size), 0, 0, 0)
	h2 := size * 2
	buf = append(buf, byte(h2), 0, 0, 0)
	buf = append(buf, 1, 0)
	buf = append(buf, 32, 0)
	buf = append(buf, 0, 0, 0, 0) // No compression
	pxSize := uint32(pixelDataSize)
	buf = append(buf, byte(pxSize), byte(pxSize>>8), byte(pxSize>>16), byte(pxSize>>24))
	buf = append(buf, 0, 0, 0, 0)
	buf = append(buf, 0, 0, 0, 0)
	buf = append(buf, 0, 0, 0, 0)
	buf = append(buf, 0, 0, 0, 0)

	// Pixel data (already bottom-up BGRA)
	buf = append(buf, pixels...)

	// AND mask
	for i := 0; i < maskSize; i++ {
		buf = append(buf, 0)
	}

	return buf
}
