package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 480
	ImageAreaHeight = 360
)

// ImageDisplay shows the annotated frame and, for the color pipeline, the mask beside it
type ImageDisplay struct {
	container  fyne.CanvasObject
	frameImage *canvas.Image
	maskImage  *canvas.Image
	splitView  *container.Split
}

func NewImageDisplay(withMask bool) *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents(withMask)
	display.setupLayout()
	return display
}

func newCanvasImage() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleFastest
	img.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return img
}

func (id *ImageDisplay) createComponents(withMask bool) {
	id.frameImage = newCanvasImage()
	if withMask {
		id.maskImage = newCanvasImage()
	}
}

func (id *ImageDisplay) setupLayout() {
	frameContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Frame**"),
		nil, nil, nil,
		id.frameImage,
	)

	if id.maskImage == nil {
		id.container = frameContainer
		return
	}

	maskContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Mask**"),
		nil, nil, nil,
		id.maskImage,
	)

	id.splitView = container.NewHSplit(frameContainer, maskContainer)
	id.splitView.SetOffset(0.5)
	id.container = id.splitView
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

func (id *ImageDisplay) HasMask() bool {
	return id.maskImage != nil
}

func (id *ImageDisplay) SetFrame(img image.Image) {
	id.frameImage.Image = img
	id.frameImage.Refresh()
}

// SetMask is a no-op when the display was built without a mask pane
func (id *ImageDisplay) SetMask(img image.Image) {
	if id.maskImage == nil {
		return
	}
	id.maskImage.Image = img
	id.maskImage.Refresh()
}
