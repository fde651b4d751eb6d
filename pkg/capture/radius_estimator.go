package capture

import "math"

// EstimateRadius dispatches to EstimateRadiusBayer or
// EstimateRadiusXTrans depending on sensor.IsXTrans(), over the CFA
// plane described by roi. lowerLimit/upperLimit are the raw-value
// floor/ceiling used to reject noise and clipped highlights while
// searching for the sharpest unclipped edge.
func EstimateRadius(cfa []float32, roi Roi, sensor SensorPattern, lowerLimit, upperLimit float32) float32 {
	if sensor.IsXTrans() {
		return EstimateRadiusXTrans(cfa, roi.Width, roi.Height, lowerLimit, upperLimit, roi, sensor.xtrans)
	}
	return EstimateRadiusBayer(cfa, roi.Width, roi.Height, lowerLimit, upperLimit, sensor.filters)
}

// EstimateRadiusBayer is a direct port of _calcRadiusBayer: it scans
// green photosites, looking at their diagonal green neighbours for
// the highest unclipped intensity ratio, and turns that ratio into a
// blur radius via sqrt(1/ln(maxRatio)). The two diagonal neighbours
// (val1m1, val1p1) are probed with different control flow in the
// original — the val1p1 probe "continue"s on a clipped check, the
// val1m1 probe just skips the maxRatio update — and both forms are
// kept as written. Because the val1p1 probe is the last statement of
// the loop body, its continue has the same effect as skipping the
// update.
func EstimateRadiusBayer(cfa []float32, width, height int, lowerLimit, upperLimit float32, filters uint32) float32 {
	fc := [2]int{colorBayer(0, 0, filters), colorBayer(1, 0, filters)}
	maxRatio := float32(1.0)

	for row := 4; row < height-4; row++ {
		start := 5 + (fc[row&1] & 1)
		for col := start; col < width-4; col += 2 {
			i := row*width + col
			val00 := cfa[i]
			if val00 <= rawEps {
				continue
			}
			val1m1 := cfa[i+width-1]
			val1p1 := cfa[i+width+1]

			if val1m1 > rawEps {
				maxVal := fmax32(val00, val1m1)
				if maxVal > lowerLimit {
					minVal := fmin32(val00, val1m1)
					if maxVal > maxRatio*minVal {
						clipped := false
						if maxVal == val00 {
							if fmax32(fmax32(cfa[i-width-1], cfa[i-width+1]), val1p1) >= upperLimit {
								clipped = true
							}
						} else {
							if fmax32(fmax32(fmax32(cfa[i-2], val00), cfa[i+2*width-2]), cfa[i+2*width]) >= upperLimit {
								clipped = true
							}
						}
						if !clipped {
							maxRatio = maxVal / minVal
						}
					}
				}
			}

			if val1p1 > rawEps {
				maxVal := fmax32(val00, val1p1)
				if maxVal > lowerLimit {
					minVal := fmin32(val00, val1p1)
					if maxVal > maxRatio*minVal {
						if maxVal == val00 {
							if fmax32(fmax32(cfa[i-width-1], cfa[i-width+1]), val1p1) >= upperLimit {
								continue
							}
						} else {
							if fmax32(fmax32(fmax32(val00, cfa[i+2]), cfa[i+2*width]), cfa[i+2*width+2]) >= upperLimit {
								continue
							}
						}
						maxRatio = maxVal / minVal
					}
				}
			}
		}
	}
	return float32(math.Sqrt(1.0 / math.Log(float64(maxRatio))))
}

// EstimateRadiusXTrans is a direct port of _calcRadiusXtrans: it first
// locates a "solitary green" anchor cell within the 6x6 repeat tile
// (a green photosite whose horizontal neighbours differ in colour and
// whose vertical/horizontal immediate neighbours aren't green), then
// walks the image in 3-pixel strides from that anchor comparing
// diagonal neighbour ratios, the same way EstimateRadiusBayer does.
func EstimateRadiusXTrans(cfa []float32, width, height int, lowerLimit, upperLimit float32, roi Roi, xtrans [6][6]uint8) float32 {
	startx, starty := 12, 12
	found := false
	for sy := 6; sy < 12 && !found; sy++ {
		for sx := 6; sx < 12 && !found; sx++ {
			if colorXTrans(sy, sx, roi, xtrans) == 1 &&
				colorXTrans(sy, sx-1, roi, xtrans) != colorXTrans(sy, sx+1, roi, xtrans) &&
				colorXTrans(sy-1, sx, roi, xtrans) != 1 &&
				colorXTrans(sy, sx-1, roi, xtrans) != 1 {
				starty, startx = sy, sx
				found = true
			}
		}
	}

	maxRatio := float32(1.0)
	for row := starty + 2; row < height-4; row += 3 {
		for col := startx + 2; col < width-4; col += 3 {
			i := row*width + col
			valp1p1 := cfa[i+width+1]
			squareClipped := fmax32(fmax32(fmax32(valp1p1, cfa[i+width+2]), cfa[i+2*width+1]), cfa[i+2*width+2]) >= upperLimit

			greenSolitary := cfa[i]
			if greenSolitary > rawEps && fmax32(cfa[i-width-1], cfa[i-width+1]) < upperLimit && greenSolitary < upperLimit {
				valp1m1 := cfa[i+width-1]
				if valp1m1 > rawEps && fmax32(fmax32(fmax32(cfa[i+width-2], valp1m1), cfa[i+2*width-2]), cfa[i+width-1]) < upperLimit {
					maxVal := fmax32(greenSolitary, valp1m1)
					if maxVal > lowerLimit {
						minVal := fmin32(greenSolitary, valp1m1)
						if maxVal > maxRatio*minVal {
							maxRatio = maxVal / minVal
						}
					}
				}
				if valp1p1 > rawEps && !squareClipped {
					maxVal := fmax32(greenSolitary, valp1p1)
					if maxVal > lowerLimit {
						minVal := fmin32(greenSolitary, valp1p1)
						if maxVal > maxRatio*minVal {
							maxRatio = maxVal / minVal
						}
					}
				}
			}

			if squareClipped {
				continue
			}

			valp2p2 := cfa[i+2*width+2]
			if valp2p2 > rawEps {
				if valp1p1 > rawEps {
					maxVal := fmax32(valp1p1, valp2p2)
					if maxVal > lowerLimit {
						minVal := fmin32(valp1p1, valp2p2)
						if maxVal > maxRatio*minVal {
							maxRatio = maxVal / minVal
						}
					}
				}
				greenSolitaryRight := cfa[i+3*width+3]
				if greenSolitaryRight > rawEps && fmax32(fmax32(greenSolitaryRight, cfa[i+4*width+2]), cfa[i+4*width+4]) < upperLimit {
					maxVal := fmax32(greenSolitaryRight, valp2p2)
					if maxVal > lowerLimit {
						minVal := fmin32(greenSolitaryRight, valp2p2)
						if maxVal > maxRatio*minVal {
							maxRatio = maxVal / minVal
						}
					}
				}
			}

			valp1p2 := cfa[i+width+2]
			valp2p1 := cfa[i+2*width+1]
			if valp2p1 > rawEps {
				if valp1p2 > rawEps {
					maxVal := fmax32(valp1p2, valp2p1)
					if maxVal > lowerLimit {
						minVal := fmin32(valp1p2, valp2p1)
						if maxVal > maxRatio*minVal {
							maxRatio = maxVal / minVal
						}
					}
				}
				greenSolitaryLeft := cfa[i+3*width]
				if greenSolitaryLeft > rawEps && fmax32(fmax32(greenSolitaryLeft, cfa[i+4*width-1]), cfa[i+4*width+1]) < upperLimit {
					maxVal := fmax32(greenSolitaryLeft, valp2p1)
					if maxVal > lowerLimit {
						minVal := fmin32(greenSolitaryLeft, valp2p1)
						if maxVal > maxRatio*minVal {
							maxRatio = maxVal / minVal
						}
					}
				}
			}
		}
	}
	return float32(math.Sqrt(1.0 / math.Log(float64(maxRatio))))
}
