package main

import (
	"github.com/mappu/miqt/qt"
	"github.com/mappu/miqt/qt/mainthread"
)

// QT Toolkit helpers

// CallOnQtMain queues fn() to run on the Qt GUI thread, from any goroutine.
func CallOnQtMain(fn func()) {
	mainthread.Wait(fn)
}

func QTshowError(parent *qt.QWidget, title, message string) {
	qt.QMessageBox_Critical(parent, title, message)
}

func QTshowInfo(parent *qt.QWidget, title, message string) {
	qt.QMessageBox_Information(parent, title, message)
}

func QTshowWarn(parent *qt.QWidget, title, message string) {
	qt.QMessageBox_Warning(parent, title, message)
}

func ShowConfirmDialog(parent *qt.QWidget, title, text string) bool {
	ret := qt.QMessageBox_Question4(
		parent,
		title,
		text,
		qt.QMessageBox__Yes, qt.QMessageBox__No)
	return ret == int(qt.QMessageBox__Yes)
}
