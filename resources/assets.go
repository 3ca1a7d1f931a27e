package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
)

// IconVariant selects the tint of the application icon.
type IconVariant string

const (
	IconActive IconVariant = "active"
	IconPaused IconVariant = "paused"
	IconRest   IconVariant = "rest"
)

const iconSize = 64

var iconTints = map[IconVariant]color.NRGBA{
	IconActive: {R: 46, G: 160, B: 110, A: 255},
	IconPaused: {R: 128, G: 128, B: 128, A: 255},
	IconRest:   {R: 232, G: 150, B: 40, A: 255},
}

var iconCache sync.Map

// Icon returns the application icon for variant as a PNG resource.
func Icon(variant IconVariant) (fyne.Resource, error) {
	name := "eyeguard-" + string(variant) + ".png"
	if cached, ok := iconCache.Load(name); ok {
		return cached.(fyne.Resource), nil
	}

	tint, ok := iconTints[variant]
	if !ok {
		return nil, fmt.Errorf("load resource %s: unknown icon variant", name)
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, drawEye(tint)); err != nil {
		return nil, fmt.Errorf("load resource %s: %w", name, err)
	}

	resource := fyne.NewStaticResource(name, buffer.Bytes())
	iconCache.Store(name, resource)
	return resource, nil
}

// MustIcon returns the icon or panics on error.
func MustIcon(variant IconVariant) fyne.Resource {
	resource, err := Icon(variant)
	if err != nil {
		panic(err)
	}
	return resource
}

// drawEye paints a tinted disc with a white almond and a dark pupil.
func drawEye(tint color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	pupil := color.NRGBA{R: 24, G: 32, B: 40, A: 255}

	center := float64(iconSize-1) / 2
	radius := float64(iconSize) / 2
	// The almond is the intersection of two circles offset vertically.
	lidRadius := radius * 0.95
	lidOffset := radius * 0.55
	pupilRadius := radius * 0.25

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := float64(x)-center, float64(y)-center
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			pixel := tint
			upper := dx*dx + (dy+lidOffset)*(dy+lidOffset)
			lower := dx*dx + (dy-lidOffset)*(dy-lidOffset)
			if upper < lidRadius*lidRadius && lower < lidRadius*lidRadius {
				pixel = white
				if dx*dx+dy*dy < pupilRadius*pupilRadius {
					pixel = pupil
				}
			}
			img.SetNRGBA(x, y, pixel)
		}
	}
	return img
}
