package main

import (
	"fmt"
	"strconv"

	"github.com/mappu/miqt/qt"
)

var settingsWindow *qt.QDialog

// showSettingsWindow displays the compiler settings form. The form is a
// singleton, reopening it raises the existing window.
func showSettingsWindow(parent *qt.QWidget) {
	if settingsWindow != nil {
		settingsWindow.Show()
		settingsWindow.Raise()
		settingsWindow.ActivateWindow()
		settingsWindow.SetFocus()
		return
	}

	settingsWindow = qt.NewQDialog(parent)
	settingsWindow.SetWindowTitle(RepresentativeName + " - Settings")
	settingsWindow.Resize(560, 380)

	settingsWindow.OnCloseEvent(func(super func(event *qt.QCloseEvent), event *qt.QCloseEvent) {
		event.Ignore()
		settingsWindow.Hide()
	})

	mainLayout := qt.NewQVBoxLayout(settingsWindow.QWidget)
	tabs := qt.NewQTabWidget(settingsWindow.QWidget)

	// COMPILER TAB
	compilerTab := qt.NewQWidget(settingsWindow.QWidget)
	compilerLayout := qt.NewQFormLayout(compilerTab)

	compilerEdit := qt.NewQLineEdit4(settings.Compiler, nil)
	browseBtn := qt.NewQPushButton5("Browse...", nil)
	browseBtn.OnClicked(func() {
		fileDlg := qt.NewQFileDialog6(settingsWindow.QWidget, "Select Resource Compiler",
			settings.LastDir, "All files (*)")
		fileDlg.SetFileMode(qt.QFileDialog__ExistingFile)
		if fileDlg.Exec() != int(qt.QDialog__Accepted) {
			return
		}
		files := fileDlg.SelectedFiles()
		if len(files) > 0 {
			compilerEdit.SetText(files[0])
		}
	})
	probeBtn := qt.NewQPushButton5("Probe", nil)
	probeBtn.SetToolTip("Run the compiler with -help to verify it responds")
	probeBtn.OnClicked(func() {
		help, err := CheckCompiler(compilerEdit.Text())
		if err != nil {
			QTshowError(settingsWindow.QWidget, "Probe Failed", err.Error())
			return
		}
		QTshowInfo(settingsWindow.QWidget, "Compiler OK", TruncateString(help, 2000))
	})
	compilerRow := qt.NewQHBoxLayout2()
	compilerRow.AddWidget(compilerEdit.QWidget)
	compilerRow.AddWidget(browseBtn.QWidget)
	compilerRow.AddWidget(probeBtn.QWidget)
	compilerRowWidget := qt.NewQWidget(nil)
	compilerRowWidget.SetLayout(compilerRow.QLayout)

	formatCombo := qt.NewQComboBox(nil)
	formatCombo.AddItem(FormatPythonModule)
	formatCombo.AddItem(FormatBinary)
	formatCombo.SetCurrentText(settings.OutputFormat)

	rootEdit := qt.NewQLineEdit4(settings.RootPrefix, nil)
	rootEdit.SetPlaceholderText("/assets")

	compilerLayout.AddRow3("Compiler:", compilerRowWidget.QWidget)
	compilerLayout.AddRow3("Output format:", formatCombo.QWidget)
	compilerLayout.AddRow3("Root prefix:", rootEdit.QWidget)

	// COMPRESSION TAB
	compressionTab := qt.NewQWidget(settingsWindow.QWidget)
	compressionLayout := qt.NewQFormLayout(compressionTab)

	noCompressCheck := qt.NewQCheckBox4("Disable compression", compressionTab)
	noCompressCheck.SetChecked(settings.NoCompress)

	compressCheck := qt.NewQCheckBox4("Set compression level", compressionTab)
	compressCheck.SetChecked(settings.Compress)
	levelCombo := qt.NewQComboBox(nil)
	for level := 1; level <= 9; level++ {
		levelCombo.AddItem(strconv.Itoa(level))
	}
	levelCombo.SetCurrentText(strconv.Itoa(settings.CompressLevel))

	thresholdCheck := qt.NewQCheckBox4("Set compression threshold", compressionTab)
	thresholdCheck.SetChecked(settings.Threshold)
	thresholdEdit := qt.NewQLineEdit4(strconv.Itoa(settings.ThresholdLevel), nil)
	thresholdEdit.SetPlaceholderText("0-100")

	noCompressCheck.OnStateChanged(func(state int) {
		if noCompressCheck.IsChecked() {
			compressCheck.SetChecked(false)
			thresholdCheck.SetChecked(false)
		}
	})
	compressCheck.OnStateChanged(func(state int) {
		if compressCheck.IsChecked() {
			noCompressCheck.SetChecked(false)
		}
	})

	compressionLayout.AddWidget(noCompressCheck.QWidget)
	compressionLayout.AddWidget(compressCheck.QWidget)
	compressionLayout.AddRow3("Level:", levelCombo.QWidget)
	compressionLayout.AddWidget(thresholdCheck.QWidget)
	compressionLayout.AddRow3("Threshold:", thresholdEdit.QWidget)

	tabs.AddTab(compilerTab, "Compiler")
	tabs.AddTab(compressionTab, "Compression")
	mainLayout.AddWidget(tabs.QWidget)

	// Buttons
	btnRow := qt.NewQHBoxLayout2()
	btnRow.AddStretch()
	saveBtn := qt.NewQPushButton5("Save", nil)
	cancelBtn := qt.NewQPushButton5("Cancel", nil)
	btnRow.AddWidget(saveBtn.QWidget)
	btnRow.AddWidget(cancelBtn.QWidget)
	mainLayout.AddLayout(btnRow.QLayout)

	cancelBtn.OnClicked(func() {
		settingsWindow.Hide()
	})
	saveBtn.OnClicked(func() {
		threshold, err := strconv.Atoi(thresholdEdit.Text())
		if err != nil || threshold < 0 || threshold > 100 {
			QTshowError(settingsWindow.QWidget, "Error", "The threshold must be a number between 0 and 100.")
			return
		}
		level, err := strconv.Atoi(levelCombo.CurrentText())
		if err != nil || level < 1 || level > 9 {
			QTshowError(settingsWindow.QWidget, "Error", "The compression level must be between 1 and 9.")
			return
		}

		settings.Compiler = compilerEdit.Text()
		settings.OutputFormat = formatCombo.CurrentText()
		settings.RootPrefix = rootEdit.Text()
		settings.NoCompress = noCompressCheck.IsChecked()
		settings.Compress = compressCheck.IsChecked()
		settings.CompressLevel = level
		settings.Threshold = thresholdCheck.IsChecked()
		settings.ThresholdLevel = threshold

		if _, err := BuildCommand(settings.Compiler, "in.qrc", "out", settings.CompileOptions()); err != nil {
			QTshowError(settingsWindow.QWidget, "Error", fmt.Sprintf("Invalid compiler settings: %s", err))
			return
		}

		saveSettings()
		settingsWindow.Hide()
		setStatus("Settings saved")
	})

	settingsWindow.Show()
}
