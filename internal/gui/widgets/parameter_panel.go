package widgets

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"led-shapes/internal/models"
)

// ParameterPanel holds one slider per HSV bound
type ParameterPanel struct {
	container              *fyne.Container
	sliders                map[models.Channel]*widget.Slider
	labels                 map[models.Channel]*widget.Label
	parameterChangeHandler func(models.Channel, int)
}

func NewParameterPanel(initial models.HSVRange) *ParameterPanel {
	panel := &ParameterPanel{
		sliders: make(map[models.Channel]*widget.Slider, len(models.Channels)),
		labels:  make(map[models.Channel]*widget.Label, len(models.Channels)),
	}
	panel.setupPanel(initial)
	return panel
}

func (pp *ParameterPanel) setupPanel(initial models.HSVRange) {
	lower := container.NewHBox()
	upper := container.NewHBox()

	for _, c := range models.Channels {
		c := c
		r := c.Range()
		value := initial.Value(c)

		slider := widget.NewSlider(float64(r.Min), float64(r.Max))
		slider.Step = 1
		slider.SetValue(float64(value))

		label := widget.NewLabel(sliderText(c, value))

		slider.OnChanged = func(v float64) {
			intValue := r.Clamp(int(v))
			label.SetText(sliderText(c, intValue))

			if pp.parameterChangeHandler != nil {
				pp.parameterChangeHandler(c, intValue)
			}
		}

		pp.sliders[c] = slider
		pp.labels[c] = label

		column := container.NewVBox(label, slider)
		if c <= models.VMin {
			lower.Add(column)
		} else {
			upper.Add(column)
		}
	}

	pp.container = container.NewVBox(
		widget.NewLabel("HSV range:"),
		container.NewGridWithColumns(1, lower, upper),
	)
}

func sliderText(c models.Channel, v int) string {
	return c.String() + ": " + strconv.Itoa(v)
}

func (pp *ParameterPanel) GetContainer() *fyne.Container {
	return pp.container
}

func (pp *ParameterPanel) SetParameterChangeHandler(handler func(models.Channel, int)) {
	pp.parameterChangeHandler = handler
}

// Value is the slider position for a bound
func (pp *ParameterPanel) Value(c models.Channel) int {
	return int(pp.sliders[c].Value)
}

// LabelText is the caption shown above a slider
func (pp *ParameterPanel) LabelText(c models.Channel) string {
	return pp.labels[c].Text
}

func (pp *ParameterPanel) slider(c models.Channel) *widget.Slider {
	return pp.sliders[c]
}
