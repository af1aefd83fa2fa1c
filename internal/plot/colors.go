package plot

import (
	"fmt"
	"image/color"
)

// keypointCycle is the colour order for keypoint series: blue, red, green,
// cyan, magenta, black.
var keypointCycle = []color.RGBA{
	{R: 0, G: 0, B: 255, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
	{R: 0, G: 128, B: 0, A: 255},
	{R: 0, G: 191, B: 191, A: 255},
	{R: 191, G: 0, B: 191, A: 255},
	{R: 0, G: 0, B: 0, A: 255},
}

var (
	darkKhaki = color.RGBA{R: 189, G: 183, B: 107, A: 255}
	royalBlue = color.RGBA{R: 65, G: 105, B: 225, A: 255}
	lightGrey = color.RGBA{R: 211, G: 211, B: 211, A: 128}
	meanGreen = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	red       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	black     = color.RGBA{A: 255}
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// boxFills alternates between consecutive boxes.
var boxFills = []color.RGBA{darkKhaki, royalBlue}

// Cycle returns the i-th colour of the keypoint colour cycle.
func Cycle(i int) color.RGBA {
	return keypointCycle[i%len(keypointCycle)]
}

// BoxFill returns the fill colour of the i-th box.
func BoxFill(i int) color.RGBA {
	return boxFills[i%len(boxFills)]
}

// hexColor formats c as #rrggbb for the HTML charts.
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
