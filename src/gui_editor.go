package main

/* Resource collection editor window
One tab per qresource group, one table row per file entry. Every user
gesture maps onto exactly one model operation, the widgets only display
whatever the model currently holds.
*/

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mappu/miqt/qt"
)

var qtapp *qt.QApplication
var editorWindow *qt.QWidget
var editorTabs *qt.QTabWidget
var statusLabel *qt.QLabel
var collection *ResourceCollection
var groupTables []*qt.QTableWidget

var EntryTableColumns = []string{
	"Alias",
	"File",
	"Status",
}

const guiCompileTimeout = 2 * time.Minute

// startEditor boots Qt, loads the requested manifest (if any) and spins
// the event loop until the editor window closes.
func startEditor(openFile string) {
	qtapp = qt.NewQApplication(os.Args)

	if GetOS() == "windows" {
		qt.QApplication_SetStyleWithStyle("windowsvista")
	}
	if GetOS() == "darwin" {
		qt.QApplication_SetStyleWithStyle("macintosh")
	}

	collection = NewResourceCollection()
	if openFile != "" {
		loaded, err := LoadCollection(openFile)
		if err != nil {
			log.Printf("Unable to open %s: %s\n", openFile, err)
			QTshowError(nil, "Open Error", fmt.Sprintf("Unable to open %s: %s", openFile, err))
		} else {
			collection = loaded
			settings.LastDir = filepath.Dir(openFile)
		}
	}

	showEditorWindow()
	qt.QApplication_Exec()
}

func showEditorWindow() {
	if editorWindow != nil {
		editorWindow.Show()
		editorWindow.Raise()
		editorWindow.ActivateWindow()
		editorWindow.SetFocus()
		return
	}

	editorWindow = qt.NewQWidget(nil)
	editorWindow.Resize(settings.WindowWidth, settings.WindowHeight)
	editorWindow.OnCloseEvent(func(super func(event *qt.QCloseEvent), event *qt.QCloseEvent) {
		if !okToContinue() {
			event.Ignore()
			return
		}
		rememberWindowState()
		super(event)
	})

	// Button bar, two rows: file/compile actions and edit actions
	fileRow := qt.NewQHBoxLayout2()
	editRow := qt.NewQHBoxLayout2()

	addBtn := func(row *qt.QHBoxLayout, name, tooltip string, cb func()) {
		btn := qt.NewQPushButton5(name, nil)
		btn.SetToolTip(tooltip)
		btn.OnClicked(cb)
		row.AddWidget(btn.QWidget)
	}

	addBtn(fileRow, "New", "Create a Resource collection file", fileNew)
	addBtn(fileRow, "Open", "Open a Resource collection file", fileOpen)
	addBtn(fileRow, "Save", "Save the Resource collection file", func() { fileSave() })
	addBtn(fileRow, "Save as", "Save the Resource collection using a new name", func() { fileSaveAs() })
	addBtn(fileRow, "Compile", "Compile the Resource collection with the external compiler", fileCompile)
	addBtn(fileRow, "Check", "Validate that every file entry exists on disk", runCheck)
	fileRow.AddStretch()
	addBtn(fileRow, "Settings", "Configure the external compiler", func() { showSettingsWindow(editorWindow) })
	addBtn(fileRow, "About", "About "+RepresentativeName, func() { showAboutQt(editorWindow) })

	addBtn(editRow, "Add Prefix", "Add a resource prefix tab", editAddGroup)
	addBtn(editRow, "Edit Prefix", "Edit the current prefix tab", editEditGroup)
	addBtn(editRow, "Remove Prefix", "Remove the current prefix and all its entries", editRemoveGroup)
	addBtn(editRow, "Add File", "Add a file entry to the current prefix", editAddResource)
	addBtn(editRow, "Edit File", "Edit the selected file entry", editEditResource)
	addBtn(editRow, "Remove File", "Remove the selected file entry", editRemoveResource)
	addBtn(editRow, "Up", "Move the selected entry up", func() { editMoveResource(-1) })
	addBtn(editRow, "Down", "Move the selected entry down", func() { editMoveResource(+1) })
	addBtn(editRow, "Sort", "Sort the entries of the current prefix", editSortGroup)
	editRow.AddStretch()
	addBtn(editRow, "Search", "Find an entry by alias or file name", editSearch)

	editorTabs = qt.NewQTabWidget(editorWindow)
	editorTabs.SetTabsClosable(true)
	editorTabs.OnTabCloseRequested(func(index int) {
		editorTabs.SetCurrentIndex(index)
		editRemoveGroup()
	})

	statusLabel = qt.NewQLabel5("Ready", nil)

	mainLayout := qt.NewQVBoxLayout(nil)
	mainLayout.AddLayout(fileRow.QLayout)
	mainLayout.AddLayout(editRow.QLayout)
	mainLayout.AddWidget(editorTabs.QWidget)
	mainLayout.AddWidget(statusLabel.QWidget)
	mainLayout.SetContentsMargins(4, 4, 4, 4)
	mainLayout.SetSpacing(4)
	editorWindow.SetLayout(mainLayout.QLayout)

	// Hotkeys
	findShortcut := qt.NewQShortcut2(qt.NewQKeySequence2("Ctrl+F"), editorWindow)
	findShortcut.OnActivated(editSearch)
	findNextShortcut := qt.NewQShortcut2(qt.NewQKeySequence2("Ctrl+N"), editorWindow)
	findNextShortcut.OnActivated(searchNext)
	delShortcut := qt.NewQShortcut2(qt.NewQKeySequence2("Delete"), editorWindow)
	delShortcut.OnActivated(editRemoveResource)
	saveShortcut := qt.NewQShortcut2(qt.NewQKeySequence2("Ctrl+S"), editorWindow)
	saveShortcut.OnActivated(func() { fileSave() })
	openShortcut := qt.NewQShortcut2(qt.NewQKeySequence2("Ctrl+O"), editorWindow)
	openShortcut.OnActivated(fileOpen)
	compileShortcut := qt.NewQShortcut2(qt.NewQKeySequence2("Alt+C"), editorWindow)
	compileShortcut.OnActivated(fileCompile)

	updateEditorTabs(0)

	editorWindow.Show()
	editorWindow.Raise()
	editorWindow.ActivateWindow()
	editorWindow.SetFocus()
}

func rememberWindowState() {
	settings.WindowWidth = editorWindow.Width()
	settings.WindowHeight = editorWindow.Height()
	saveSettings()
	if Store != nil {
		err := Store.SetMany("Window", map[string]interface{}{
			"width":  settings.WindowWidth,
			"height": settings.WindowHeight,
		})
		if err != nil {
			log.Printf("Unable to save window state: %s\n", err)
		}
	}
}

func setStatus(msg string) {
	log.Printf("%s\n", msg)
	if statusLabel != nil {
		statusLabel.SetText(msg)
	}
}

func updateWindowTitle() {
	title := RepresentativeName
	if name := collection.FileName(); name != "" {
		title += " - " + filepath.Base(name)
	}
	if collection.Dirty() {
		title += " *"
	}
	editorWindow.SetWindowTitle(title)
}

// updateEditorTabs rebuilds every tab from the model. current selects
// the tab to focus afterwards.
func updateEditorTabs(current int) {
	editorTabs.Clear()
	groupTables = nil
	issues := issuesByRef()

	for gi := range collection.Groups {
		group := &collection.Groups[gi]
		table := newGroupTable(gi, issues)
		groupTables = append(groupTables, table)
		editorTabs.AddTab(table.QWidget, group.Title())
	}
	if current >= 0 && current < len(collection.Groups) {
		editorTabs.SetCurrentIndex(current)
	}
	updateWindowTitle()
}

// issuesByRef indexes the current validation findings by entry ref for
// the status column.
func issuesByRef() map[string]Issue {
	indexed := make(map[string]Issue)
	for _, issue := range collection.Validate("") {
		// errors win over warnings for the same entry
		if existing, ok := indexed[issue.Ref]; ok && existing.Severity == SeverityError {
			continue
		}
		indexed[issue.Ref] = issue
	}
	return indexed
}

func newGroupTable(groupIndex int, issues map[string]Issue) *qt.QTableWidget {
	group := &collection.Groups[groupIndex]

	table := qt.NewQTableWidget(nil)
	table.SetRowCount(len(group.Resources))
	table.SetColumnCount(len(EntryTableColumns))
	table.SetHorizontalHeaderLabels(EntryTableColumns)
	table.SetEditTriggers(qt.QAbstractItemView__NoEditTriggers)
	table.SetSelectionBehavior(qt.QAbstractItemView__SelectRows)
	table.SetSelectionMode(qt.QAbstractItemView__SingleSelection)
	table.HorizontalHeader().SetSectionResizeMode(qt.QHeaderView__Interactive)
	table.VerticalHeader().SetVisible(false)

	for row := range group.Resources {
		res := &group.Resources[row]
		aliasItem := qt.NewQTableWidgetItem2(res.Alias)
		fileItem := qt.NewQTableWidgetItem2(res.Path)
		status := ""
		if issue, ok := issues[res.ID]; ok {
			if issue.Severity == SeverityError {
				status = "missing"
			} else {
				status = "duplicate alias"
			}
			aliasItem.SetToolTip(issue.Reason)
			fileItem.SetToolTip(issue.Reason)
		}
		statusItem := qt.NewQTableWidgetItem2(status)
		table.SetItem(row, 0, aliasItem)
		table.SetItem(row, 1, fileItem)
		table.SetItem(row, 2, statusItem)
	}
	table.SetColumnWidth(0, 180)
	table.SetColumnWidth(1, 420)
	table.SetColumnWidth(2, 120)

	table.OnCellDoubleClicked(func(row, col int) {
		editorTabs.SetCurrentIndex(groupIndex)
		editEditResource()
	})

	table.SetContextMenuPolicy(qt.CustomContextMenu)
	table.OnCustomContextMenuRequested(func(pos *qt.QPoint) {
		row := table.RowAt(pos.Y())
		if row < 0 {
			return
		}
		table.SelectRow(row)

		menu := qt.NewQMenu(table.QWidget)
		noIcon := qt.NewQIcon()

		editAction := qt.NewQAction3(noIcon, "Edit File...")
		editAction.OnTriggered(editEditResource)
		removeAction := qt.NewQAction3(noIcon, "Remove File")
		removeAction.OnTriggered(editRemoveResource)
		upAction := qt.NewQAction3(noIcon, "Move Up")
		upAction.OnTriggered(func() { editMoveResource(-1) })
		downAction := qt.NewQAction3(noIcon, "Move Down")
		downAction.OnTriggered(func() { editMoveResource(+1) })

		menu.AddActions([]*qt.QAction{editAction, removeAction})
		menu.AddSeparator()
		menu.AddActions([]*qt.QAction{upAction, downAction})
		menu.ExecWithPos(table.MapToGlobal(pos))
	})

	return table
}

// currentGroup returns the group behind the focused tab, nil when the
// collection is empty.
func currentGroup() *ResourceGroup {
	idx := editorTabs.CurrentIndex()
	group, err := collection.GroupAt(idx)
	if err != nil {
		return nil
	}
	return group
}

// currentResource returns the entry behind the selected table row.
func currentResource() *Resource {
	idx := editorTabs.CurrentIndex()
	if idx < 0 || idx >= len(groupTables) {
		return nil
	}
	row := groupTables[idx].CurrentRow()
	group, err := collection.GroupAt(idx)
	if err != nil || row < 0 || row >= len(group.Resources) {
		return nil
	}
	return &group.Resources[row]
}

// okToContinue offers to save unsaved changes before a destructive step.
func okToContinue() bool {
	if collection == nil || !collection.Dirty() {
		return true
	}
	if ShowConfirmDialog(editorWindow, RepresentativeName+" - Unsaved Changes", "Save unsaved changes?") {
		return fileSave()
	}
	return true
}

func fileNew() {
	if !okToContinue() {
		return
	}
	fileDlg := qt.NewQFileDialog6(editorWindow, RepresentativeName+" - Save Resource Collection File",
		settings.LastDir, "Resource Collection file (*.qrc)")
	fileDlg.SetAcceptMode(qt.QFileDialog__AcceptSave)
	if fileDlg.Exec() != int(qt.QDialog__Accepted) {
		return
	}
	files := fileDlg.SelectedFiles()
	if len(files) == 0 {
		return
	}
	fileName := ensureQrcExt(files[0])

	collection.Clear(true)
	collection.SetFileName(fileName)
	collection.SetDirty(false)
	settings.LastDir = filepath.Dir(fileName)
	updateEditorTabs(0)
	setStatus("New collection: " + filepath.Base(fileName))
}

func fileOpen() {
	if !okToContinue() {
		return
	}
	fileDlg := qt.NewQFileDialog6(editorWindow, RepresentativeName+" - Load Resource Collection File",
		settings.LastDir, "Resource Collection file (*.qrc)")
	fileDlg.SetFileMode(qt.QFileDialog__ExistingFile)
	if fileDlg.Exec() != int(qt.QDialog__Accepted) {
		return
	}
	files := fileDlg.SelectedFiles()
	if len(files) == 0 {
		return
	}
	loaded, err := LoadCollection(files[0])
	if err != nil {
		QTshowError(editorWindow, "Load Error", err.Error())
		return
	}
	collection = loaded
	settings.LastDir = filepath.Dir(files[0])
	updateEditorTabs(0)
	setStatus(fmt.Sprintf("Loaded %d resources from %s", collection.ResourceCount(), filepath.Base(files[0])))
}

func fileSave() bool {
	if collection.FileName() == "" {
		return fileSaveAs()
	}
	if err := collection.Save(); err != nil {
		QTshowError(editorWindow, "Save Error", err.Error())
		return false
	}
	updateWindowTitle()
	setStatus(fmt.Sprintf("Saved %d resources to %s", collection.ResourceCount(), filepath.Base(collection.FileName())))
	return true
}

func fileSaveAs() bool {
	fileDlg := qt.NewQFileDialog6(editorWindow, RepresentativeName+" - Save Resource Collection File",
		settings.LastDir, "Resource Collection file (*.qrc)")
	fileDlg.SetAcceptMode(qt.QFileDialog__AcceptSave)
	if name := collection.FileName(); name != "" {
		fileDlg.SelectFile(filepath.Base(name))
	}
	if fileDlg.Exec() != int(qt.QDialog__Accepted) {
		return false
	}
	files := fileDlg.SelectedFiles()
	if len(files) == 0 {
		return false
	}
	fileName := ensureQrcExt(files[0])
	if err := collection.SaveAs(fileName); err != nil {
		QTshowError(editorWindow, "Save Error", err.Error())
		return false
	}
	settings.LastDir = filepath.Dir(fileName)
	updateEditorTabs(editorTabs.CurrentIndex())
	setStatus(fmt.Sprintf("Saved %d resources to %s", collection.ResourceCount(), filepath.Base(fileName)))
	return true
}

// runCheck validates the collection and reports the findings.
func runCheck() {
	report := BuildReport(collection, "")
	if len(report.Issues) == 0 {
		QTshowInfo(editorWindow, "Check", fmt.Sprintf("All %d resources are present and readable.", report.Checked))
		return
	}
	QTshowWarn(editorWindow, "Check", TruncateString(report.Text(), 2000))
	updateEditorTabs(editorTabs.CurrentIndex())
}

func editRemoveResource() {
	res := currentResource()
	if res == nil {
		QTshowError(editorWindow, "Error", "No file entry selected!")
		return
	}
	if !ShowConfirmDialog(editorWindow, "Remove?", "Remove "+res.Path+" from the collection?") {
		return
	}
	if err := collection.RemoveResource(res.ID); err != nil {
		QTshowError(editorWindow, "Error", err.Error())
		return
	}
	updateEditorTabs(editorTabs.CurrentIndex())
	setStatus("Resource removed")
}

func editMoveResource(delta int) {
	idx := editorTabs.CurrentIndex()
	res := currentResource()
	if res == nil {
		return
	}
	row := groupTables[idx].CurrentRow()
	if err := collection.MoveResource(res.ID, row+delta); err != nil {
		if !errors.Is(err, ErrOutOfRange) {
			QTshowError(editorWindow, "Error", err.Error())
		}
		return
	}
	updateEditorTabs(idx)
	groupTables[idx].SelectRow(row + delta)
	setStatus("Resource moved")
}

func editRemoveGroup() {
	group := currentGroup()
	if group == nil {
		QTshowError(editorWindow, "Error", "No prefix tab selected!")
		return
	}
	if !ShowConfirmDialog(editorWindow, RepresentativeName+" - Remove Prefix", "Remove the prefix and all its entries?") {
		return
	}
	if err := collection.RemoveGroup(group.ID); err != nil {
		QTshowError(editorWindow, "Error", err.Error())
		return
	}
	updateEditorTabs(0)
	setStatus("Prefix removed")
}

// fileCompile asks for an output file and runs the external compiler in
// the background, with a modal progress dialog that can kill it.
func fileCompile() {
	if !okToContinue() {
		return
	}
	manifest := collection.FileName()
	if manifest == "" {
		QTshowWarn(editorWindow, "Compile", "Save the collection before compiling.")
		return
	}

	report := BuildReport(collection, "")
	if report.HasErrors() {
		if !ShowConfirmDialog(editorWindow, "Compile", "Some file entries are missing on disk. Compile anyway?") {
			return
		}
	}

	fileDlg := qt.NewQFileDialog6(editorWindow, RepresentativeName+" - Compile Resource Collection File",
		filepath.Dir(manifest), compileFileFilter())
	fileDlg.SetAcceptMode(qt.QFileDialog__AcceptSave)
	fileDlg.SelectFile(filepath.Base(defaultOutputName(manifest, settings.OutputFormat)))
	if fileDlg.Exec() != int(qt.QDialog__Accepted) {
		return
	}
	files := fileDlg.SelectedFiles()
	if len(files) == 0 {
		return
	}
	output := files[0]

	argv, err := BuildCommand(settings.Compiler, manifest, output, settings.CompileOptions())
	if err != nil {
		QTshowError(editorWindow, "Compile Error", err.Error())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	progress := qt.NewQDialog(editorWindow)
	progress.SetWindowTitle("Compiling...")
	progress.SetModal(true)
	progressLayout := qt.NewQVBoxLayout2()
	progressLayout.AddWidget(qt.NewQLabel5("Running "+settings.Compiler+" ...", nil).QWidget)
	cancelBtn := qt.NewQPushButton5("Cancel", nil)
	cancelBtn.OnClicked(func() {
		cancel()
	})
	progressLayout.AddWidget(cancelBtn.QWidget)
	progress.SetLayout(progressLayout.QLayout)

	go func() {
		result, err := Invoke(ctx, argv, guiCompileTimeout)
		cancel()
		CallOnQtMain(func() {
			progress.Accept()
			reportCompileResult(output, result, err)
		})
	}()

	progress.Exec()
}

func compileFileFilter() string {
	if settings.OutputFormat == FormatBinary {
		return "Binary resource (*.rcc)"
	}
	return "Python file (*.py)"
}

func reportCompileResult(output string, result CompileResult, err error) {
	switch {
	case err == nil:
		setStatus(fmt.Sprintf("%s successfully compiled", filepath.Base(output)))
	case errors.Is(err, ErrCompilerNotFound):
		QTshowError(editorWindow, "Compile Error",
			fmt.Sprintf("Compiler not found: %s\nSet the compiler path in the settings.", settings.Compiler))
		setStatus("Compile failed: compiler not found")
	case errors.Is(err, ErrCompileTimeout):
		QTshowError(editorWindow, "Compile Error", "The compiler did not finish in time and was terminated.")
		setStatus("Compile failed: timeout")
	case errors.Is(err, context.Canceled):
		setStatus("Compile canceled")
	case errors.Is(err, ErrCompilerExit):
		detail := result.Stderr
		if detail == "" {
			detail = result.Stdout
		}
		QTshowError(editorWindow, "Compile Error",
			fmt.Sprintf("There was an error during the process: %s\n%s", err, TruncateString(detail, 2000)))
		setStatus(fmt.Sprintf("Compile failed: exit status %d", result.ExitCode))
	default:
		QTshowError(editorWindow, "Compile Error", err.Error())
		setStatus("Compile failed")
	}
}
