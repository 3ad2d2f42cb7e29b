package filters

// MaxNoiseSeed bounds the noise filter's seed parameter.
const MaxNoiseSeed = 1<<31 - 1

func init() {
	// Basic
	register(&FilterSpec{Name: "grayscale", Description: "Convert image to grayscale", Category: CategoryBasic, run: grayscale})

	// Enhancement
	register(&FilterSpec{
		Name: "brightness", Description: "Adjust image brightness", Category: CategoryEnhancement, run: brightness,
		Params: []ParamSpec{{Name: "value", Kind: Integer, Min: -100, Max: 100, Default: 20, Description: "Brightness adjustment"}},
	})
	register(&FilterSpec{
		Name: "contrast", Description: "Adjust image contrast", Category: CategoryEnhancement, run: contrast,
		Params: []ParamSpec{{Name: "factor", Kind: Float, Min: 0.1, Max: 3, Default: 1.5, Description: "Contrast factor"}},
	})
	register(&FilterSpec{
		Name: "gaussian-blur", Description: "Approximate a gaussian blur with a box blur of radius 2*sigma", Category: CategoryEnhancement, run: gaussianBlur,
		Params: []ParamSpec{{Name: "sigma", Kind: Float, Min: 0.1, Max: 20, Default: 2, Description: "Blur sigma"}},
	})
	register(&FilterSpec{
		Name: "box-blur", Description: "Apply box blur", Category: CategoryEnhancement, run: boxBlur,
		Params: []ParamSpec{{Name: "radius", Kind: Integer, Min: 1, Max: 50, Default: 5, Description: "Blur radius"}},
	})
	register(&FilterSpec{
		Name: "sharpen", Description: "Sharpen the image", Category: CategoryEnhancement, run: sharpen,
		Params: []ParamSpec{{Name: "strength", Kind: Float, Min: 0.1, Max: 3, Default: 1, Description: "Sharpen strength"}},
	})
	register(&FilterSpec{Name: "edge-detection", Description: "Apply Sobel edge detection", Category: CategoryEnhancement, run: edgeDetection})
	register(&FilterSpec{
		Name: "thresholding", Description: "Apply binary thresholding", Category: CategoryEnhancement, run: thresholding,
		Params: []ParamSpec{{Name: "threshold", Kind: Integer, Min: 0, Max: 255, Default: 128, Description: "Threshold value"}},
	})

	// Color
	register(&FilterSpec{
		Name: "saturate", Description: "Adjust color saturation", Category: CategoryColor, run: saturate,
		Params: []ParamSpec{{Name: "factor", Kind: Float, Min: 0, Max: 3, Default: 1.5, Description: "Saturation factor"}},
	})
	register(&FilterSpec{Name: "invert", Description: "Invert image colors", Category: CategoryColor, run: invert})
	register(&FilterSpec{
		Name: "hue-rotate", Description: "Rotate hue colors", Category: CategoryColor, run: hueRotate,
		Params: []ParamSpec{{Name: "degrees", Kind: Float, Min: -360, Max: 360, Default: 90, Description: "Hue rotation in degrees"}},
	})

	// Geometric
	register(&FilterSpec{Name: "rotate90", Description: "Rotate image 90° clockwise", Category: CategoryGeometric, run: rotate90})
	register(&FilterSpec{Name: "rotate180", Description: "Rotate image 180°", Category: CategoryGeometric, run: rotate180})
	register(&FilterSpec{Name: "rotate270", Description: "Rotate image 270° clockwise", Category: CategoryGeometric, run: rotate270})
	register(&FilterSpec{Name: "flip-horizontal", Description: "Mirror image left to right", Category: CategoryGeometric, run: flipHorizontal})
	register(&FilterSpec{Name: "flip-vertical", Description: "Mirror image top to bottom", Category: CategoryGeometric, run: flipVertical})

	// Artistic
	register(&FilterSpec{Name: "sepia", Description: "Apply sepia filter", Category: CategoryArtistic, run: sepia})
	register(&FilterSpec{
		Name: "vignette", Description: "Apply vignette effect", Category: CategoryArtistic, run: vignette,
		Params: []ParamSpec{{Name: "strength", Kind: Float, Min: 0.1, Max: 1, Default: 0.5, Description: "Vignette strength"}},
	})
	register(&FilterSpec{
		Name: "noise", Description: "Add reproducible noise to image", Category: CategoryArtistic, run: noise,
		Params: []ParamSpec{
			{Name: "strength", Kind: Integer, Min: 1, Max: 100, Default: 20, Description: "Noise strength"},
			{Name: "seed", Kind: Integer, Min: 0, Max: MaxNoiseSeed, Default: 0, Description: "Noise seed"},
		},
	})
	register(&FilterSpec{
		Name: "oil", Description: "Apply oil painting effect", Category: CategoryArtistic, run: oil,
		Params: []ParamSpec{
			{Name: "radius", Kind: Integer, Min: 1, Max: 10, Default: 4, Description: "Oil painting radius"},
			{Name: "levels", Kind: Integer, Min: 5, Max: 50, Default: 20, Description: "Intensity levels"},
		},
	})

	// Utility
	register(&FilterSpec{
		Name: "crop", Description: "Crop image to a rectangle", Category: CategoryUtility, run: crop,
		Params: []ParamSpec{
			{Name: "x", Kind: Integer, Min: 0, Max: 10000, Default: 0, Description: "X coordinate of crop start"},
			{Name: "y", Kind: Integer, Min: 0, Max: 10000, Default: 0, Description: "Y coordinate of crop start"},
			{Name: "width", Kind: Integer, Min: 1, Max: 10000, Default: 800, Description: "Width of crop area"},
			{Name: "height", Kind: Integer, Min: 1, Max: 10000, Default: 600, Description: "Height of crop area"},
		},
	})
}
