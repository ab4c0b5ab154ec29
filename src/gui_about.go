package main

import (
	"log"
	"runtime"

	"github.com/mappu/miqt/qt"
)

var aboutWin *qt.QDialog

func showAboutQt(parent *qt.QWidget) {
	if aboutWin != nil {
		aboutWin.Show()
		aboutWin.Raise()
		aboutWin.ActivateWindow()
		aboutWin.SetFocus()
		return
	}

	log.Printf("Loading about screen...\n")
	aboutWin = qt.NewQDialog(parent)
	aboutWin.SetWindowTitle("About " + appName)
	aboutWin.Resize(380, 220)

	aboutWin.OnCloseEvent(func(super func(event *qt.QCloseEvent), event *qt.QCloseEvent) {
		event.Ignore()
		aboutWin.Hide()
	})

	mainLayout := qt.NewQVBoxLayout2()

	info := RepresentativeName + " Version " + version + " (build " + build + ")\n" +
		"An editor for resource collection manifests.\n" +
		"Built with " + runtime.Version()
	verLabel := qt.NewQLabel5(info, nil)
	verLabel.SetAlignment(qt.AlignCenter)

	mainLayout.AddSpacing(15)
	mainLayout.AddWidget(verLabel.QWidget)
	mainLayout.AddSpacing(25)

	closeBtn := qt.NewQPushButton5("Close", nil)
	closeBtn.OnClicked(func() { aboutWin.Hide() })

	btnLayout := qt.NewQHBoxLayout2()
	btnLayout.AddStretch()
	btnLayout.AddWidget(closeBtn.QWidget)
	btnLayout.AddStretch()
	mainLayout.AddLayout(btnLayout.QLayout)

	aboutWin.SetLayout(mainLayout.QLayout)

	aboutWin.Show()
	aboutWin.Raise()
	aboutWin.ActivateWindow()
	aboutWin.SetFocus()
}
