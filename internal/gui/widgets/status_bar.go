package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container     *fyne.Container
	decisionLabel *widget.Label
	countsLabel   *widget.Label
}

func NewStatusBar() *StatusBar {
	decisionLabel := widget.NewLabel("Waiting for frames")
	countsLabel := widget.NewLabel("Squares: --, Circles: --")

	mainContainer := container.NewBorder(
		nil, nil,
		decisionLabel,
		countsLabel,
	)

	return &StatusBar{
		container:     mainContainer,
		decisionLabel: decisionLabel,
		countsLabel:   countsLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(decision, counts string) {
	if decision == "" {
		decision = "No majority"
	}
	sb.decisionLabel.SetText(decision)
	sb.countsLabel.SetText(counts)
}

func (sb *StatusBar) Status() (decision, counts string) {
	return sb.decisionLabel.Text, sb.countsLabel.Text
}
