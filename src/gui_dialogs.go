package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mappu/miqt/qt"
)

var lastSearch string
var lastFoundRow = -1

// editAddGroup opens the prefix form for a fresh group.
func editAddGroup() {
	showGroupForm(nil)
}

func editEditGroup() {
	group := currentGroup()
	if group == nil {
		QTshowError(editorWindow, "Error", "No prefix tab selected!")
		return
	}
	showGroupForm(group)
}

// showGroupForm edits a prefix tab. Saving a (prefix, lang) pair that
// already exists on another tab merges the two tabs instead of keeping
// a duplicate around.
func showGroupForm(group *ResourceGroup) {
	editing := group != nil

	dlg := qt.NewQDialog(editorWindow)
	if editing {
		dlg.SetWindowTitle(RepresentativeName + " - Edit Prefix")
	} else {
		dlg.SetWindowTitle(RepresentativeName + " - Add Prefix")
	}
	dlg.SetModal(true)

	prefixEdit := qt.NewQLineEdit(nil)
	prefixEdit.SetPlaceholderText("/images")
	langCombo := qt.NewQComboBox(nil)
	langCombo.SetEditable(true)
	langCombo.AddItem("")
	for _, lang := range []string{"de", "en", "es", "fr", "it", "ja", "pt", "ru", "zh"} {
		langCombo.AddItem(lang)
	}
	if editing {
		prefixEdit.SetText(group.Prefix)
		langCombo.SetCurrentText(group.Lang)
	}

	form := qt.NewQFormLayout(dlg.QWidget)
	form.AddRow3("Prefix:", prefixEdit.QWidget)
	form.AddRow3("Language:", langCombo.QWidget)

	btnBox := qt.NewQDialogButtonBox5(qt.QDialogButtonBox__Ok|qt.QDialogButtonBox__Cancel, qt.Horizontal)
	btnBox.OnAccepted(func() { dlg.Accept() })
	btnBox.OnRejected(func() { dlg.Reject() })
	form.AddWidget(btnBox.QWidget)

	if dlg.Exec() != int(qt.QDialog__Accepted) {
		return
	}

	prefix := normalizePrefix(prefixEdit.Text())
	lang := strings.TrimSpace(langCombo.CurrentText())
	if prefix == "" {
		QTshowError(editorWindow, "Error", "The prefix cannot be empty!")
		return
	}

	if !editing {
		if existingRef, ok := collection.FindGroup(prefix, lang); ok {
			// the tab already exists, just focus it
			updateEditorTabs(collection.groupIndex(existingRef))
			return
		}
		ref, err := collection.AddGroup(prefix, lang)
		if err != nil {
			QTshowError(editorWindow, "Error", err.Error())
			return
		}
		updateEditorTabs(collection.groupIndex(ref))
		setStatus("Prefix added")
		return
	}

	if existingRef, ok := collection.FindGroup(prefix, lang); ok && existingRef != group.ID {
		if !ShowConfirmDialog(editorWindow, RepresentativeName+" - Merge Prefixes",
			"A tab with this prefix and language already exists. Merge the entries into it?") {
			return
		}
		if err := collection.MergeGroups(existingRef, group.ID); err != nil {
			QTshowError(editorWindow, "Error", err.Error())
			return
		}
		updateEditorTabs(collection.groupIndex(existingRef))
		setStatus("Prefixes merged")
		return
	}

	if err := collection.UpdateGroup(group.ID, prefix, lang); err != nil {
		QTshowError(editorWindow, "Error", err.Error())
		return
	}
	updateEditorTabs(collection.groupIndex(group.ID))
	setStatus("Prefix updated")
}

// normalizePrefix keeps prefixes rooted the way the resource system
// expects them.
func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

func editAddResource() {
	group := currentGroup()
	if group == nil {
		QTshowError(editorWindow, "Error", "Add a prefix before adding file entries!")
		return
	}
	if collection.FileName() == "" {
		QTshowWarn(editorWindow, "Add File", "Save the collection first, file entries are stored relative to it.")
		return
	}
	path := pickResourceFile()
	if path == "" {
		return
	}
	showResourceForm(group, nil, path)
}

func editEditResource() {
	group := currentGroup()
	res := currentResource()
	if group == nil || res == nil {
		QTshowError(editorWindow, "Error", "No file entry selected!")
		return
	}
	showResourceForm(group, res, res.Path)
}

// pickResourceFile asks for a file below the manifest directory and
// returns its relative slash path, or "" if the user gave up.
func pickResourceFile() string {
	baseDir := collection.Dir()
	for {
		fileDlg := qt.NewQFileDialog6(editorWindow, RepresentativeName+" - Select Resource File",
			baseDir, "All files (*)")
		fileDlg.SetFileMode(qt.QFileDialog__ExistingFile)
		if fileDlg.Exec() != int(qt.QDialog__Accepted) {
			return ""
		}
		files := fileDlg.SelectedFiles()
		if len(files) == 0 {
			return ""
		}
		rel, ok := relativeResourcePath(baseDir, files[0])
		if !ok {
			QTshowWarn(editorWindow, "Invalid File Location",
				fmt.Sprintf("The file %s is not in a subdirectory of %s.\nPick a file below the collection directory.",
					filepath.Base(files[0]), baseDir))
			continue
		}
		return rel
	}
}

// showResourceForm edits one file entry. res nil means a new entry with
// the given path.
func showResourceForm(group *ResourceGroup, res *Resource, path string) {
	editing := res != nil

	dlg := qt.NewQDialog(editorWindow)
	if editing {
		dlg.SetWindowTitle(RepresentativeName + " - Edit File")
	} else {
		dlg.SetWindowTitle(RepresentativeName + " - Add File")
	}
	dlg.SetModal(true)

	pathEdit := qt.NewQLineEdit4(path, nil)
	pathEdit.SetReadOnly(true)
	browseBtn := qt.NewQPushButton5("Browse...", nil)
	browseBtn.OnClicked(func() {
		if picked := pickResourceFile(); picked != "" {
			pathEdit.SetText(picked)
		}
	})
	pathRow := qt.NewQHBoxLayout2()
	pathRow.AddWidget(pathEdit.QWidget)
	pathRow.AddWidget(browseBtn.QWidget)
	pathWidget := qt.NewQWidget(nil)
	pathWidget.SetLayout(pathRow.QLayout)

	alias := filepath.Base(path)
	if editing {
		alias = res.Alias
	}
	aliasEdit := qt.NewQLineEdit4(alias, nil)

	form := qt.NewQFormLayout(dlg.QWidget)
	form.AddRow3("File:", pathWidget.QWidget)
	form.AddRow3("Alias:", aliasEdit.QWidget)

	btnBox := qt.NewQDialogButtonBox5(qt.QDialogButtonBox__Ok|qt.QDialogButtonBox__Cancel, qt.Horizontal)
	btnBox.OnAccepted(func() { dlg.Accept() })
	btnBox.OnRejected(func() { dlg.Reject() })
	form.AddWidget(btnBox.QWidget)

	if dlg.Exec() != int(qt.QDialog__Accepted) {
		return
	}

	newPath := pathEdit.Text()
	newAlias := strings.TrimSpace(aliasEdit.Text())
	if newPath == "" {
		QTshowError(editorWindow, "Error", "The file path cannot be empty!")
		return
	}
	if group.IsDuplicateAlias(newAlias) && (!editing || newAlias != res.Alias) {
		QTshowWarn(editorWindow, "Duplicate Alias",
			"Another entry of this prefix already uses the alias "+newAlias+".")
	}

	if editing {
		if err := collection.UpdateResource(res.ID, newPath, newAlias); err != nil {
			QTshowError(editorWindow, "Error", err.Error())
			return
		}
		updateEditorTabs(editorTabs.CurrentIndex())
		setStatus("Resource updated")
		return
	}
	if _, err := collection.AddResource(group.ID, newPath, newAlias); err != nil {
		QTshowError(editorWindow, "Error", err.Error())
		return
	}
	tab := collection.groupIndex(group.ID)
	updateEditorTabs(tab)
	groupTables[tab].SelectRow(len(group.Resources) - 1)
	setStatus("Resource added")
}

// editSortGroup sorts the entries of the current prefix tab.
func editSortGroup() {
	group := currentGroup()
	if group == nil {
		QTshowError(editorWindow, "Error", "No prefix tab selected!")
		return
	}

	dlg := qt.NewQDialog(editorWindow)
	dlg.SetWindowTitle(RepresentativeName + " - Sort")
	dlg.SetModal(true)

	keyCombo := qt.NewQComboBox(nil)
	keyCombo.AddItem("Alias")
	keyCombo.AddItem("File name")
	reverseCheck := qt.NewQCheckBox4("Descending", dlg.QWidget)

	form := qt.NewQFormLayout(dlg.QWidget)
	form.AddRow3("Sort by:", keyCombo.QWidget)
	form.AddWidget(reverseCheck.QWidget)

	btnBox := qt.NewQDialogButtonBox5(qt.QDialogButtonBox__Ok|qt.QDialogButtonBox__Cancel, qt.Horizontal)
	btnBox.OnAccepted(func() { dlg.Accept() })
	btnBox.OnRejected(func() { dlg.Reject() })
	form.AddWidget(btnBox.QWidget)

	if dlg.Exec() != int(qt.QDialog__Accepted) {
		return
	}

	key := SortByAlias
	if keyCombo.CurrentIndex() == 1 {
		key = SortByPath
	}
	if err := collection.SortGroup(group.ID, key, reverseCheck.IsChecked()); err != nil {
		QTshowError(editorWindow, "Error", err.Error())
		return
	}
	updateEditorTabs(editorTabs.CurrentIndex())
	setStatus("Entries sorted")
}

// editSearch prompts for a pattern and jumps to the first fuzzy match
// on the current tab. Ctrl+N repeats with the last pattern.
func editSearch() {
	group := currentGroup()
	if group == nil {
		return
	}

	dlg := qt.NewQDialog(editorWindow)
	dlg.SetWindowTitle(RepresentativeName + " - Search")
	dlg.SetModal(true)

	queryEdit := qt.NewQLineEdit4(lastSearch, nil)
	queryEdit.SetPlaceholderText("alias or file name")

	form := qt.NewQFormLayout(dlg.QWidget)
	form.AddRow3("Find:", queryEdit.QWidget)
	btnBox := qt.NewQDialogButtonBox5(qt.QDialogButtonBox__Ok|qt.QDialogButtonBox__Cancel, qt.Horizontal)
	btnBox.OnAccepted(func() { dlg.Accept() })
	btnBox.OnRejected(func() { dlg.Reject() })
	form.AddWidget(btnBox.QWidget)

	if dlg.Exec() != int(qt.QDialog__Accepted) {
		return
	}
	lastSearch = strings.TrimSpace(queryEdit.Text())
	lastFoundRow = -1
	searchNext()
}

func searchNext() {
	if lastSearch == "" {
		return
	}
	group := currentGroup()
	if group == nil {
		return
	}
	idx := editorTabs.CurrentIndex()
	row := searchEntries(group, lastSearch, lastFoundRow+1)
	if row < 0 && lastFoundRow >= 0 {
		// wrap around once
		row = searchEntries(group, lastSearch, 0)
	}
	if row < 0 {
		setStatus("No match for " + lastSearch)
		return
	}
	lastFoundRow = row
	groupTables[idx].SelectRow(row)
	setStatus(fmt.Sprintf("Match at row %d", row+1))
	log.Printf("Search %q matched row %d\n", lastSearch, row)
}

// searchEntries fuzzy-matches alias and path from startRow on.
func searchEntries(group *ResourceGroup, query string, startRow int) int {
	query = strings.ToLower(query)
	for row := startRow; row < len(group.Resources); row++ {
		res := &group.Resources[row]
		if fuzzy.Match(query, strings.ToLower(res.Alias)) || fuzzy.Match(query, strings.ToLower(res.Path)) {
			return row
		}
	}
	return -1
}
