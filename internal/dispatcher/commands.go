package dispatcher

import (
	"fmt"
	"sort"

	"github.com/dshills/richtext/internal/dispatcher/handler"
	"github.com/dshills/richtext/internal/engine"
	"github.com/dshills/richtext/internal/engine/attr"
	"github.com/dshills/richtext/internal/engine/delta"
)

// Host command names.
const (
	CmdUndo                 = "undo"
	CmdRedo                 = "redo"
	CmdClearTextType        = "clearTextType"
	CmdClearTextStyle       = "clearTextStyle"
	CmdSetHeadline1         = "setHeadline1"
	CmdSetHeadline2         = "setHeadline2"
	CmdSetHeadline3         = "setHeadline3"
	CmdSetList              = "setList"
	CmdSetOrderedList       = "setOrderedList"
	CmdSetQuote             = "setQuote"
	CmdSetCodeBlock         = "setCodeBlock"
	CmdSetBold              = "setBold"
	CmdSetItalic            = "setItalic"
	CmdSetUnderline         = "setUnderline"
	CmdSetStrikeThrough     = "setStrikeThrough"
	CmdSetTextType          = "setTextType"
	CmdSetTextStyle         = "setTextStyle"
	CmdInsertDivider        = "insertDivider"
	CmdUpdateSelection      = "updateSelection"
	CmdFormatSelectionLines = "formatSelectionLines"
	CmdFormatText           = "formatText"
	CmdReplaceText          = "replaceText"
	CmdInsert               = "insert"
	CmdGetContents          = "getContents"
	CmdSetContents          = "setContents"
	CmdGetText              = "getText"
	CmdGetSelection         = "getSelection"
)

// Result data keys.
const (
	DataText  = "text"
	DataDelta = "delta"
)

type commandFunc = func(handler.Command, *engine.Editor) handler.Result

var editorCommands = map[string]commandFunc{
	CmdUndo: notSupported,
	CmdRedo: notSupported,

	CmdClearTextType:  func(_ handler.Command, ed *engine.Editor) handler.Result { return done(ed.ClearTextType()) },
	CmdClearTextStyle: func(_ handler.Command, ed *engine.Editor) handler.Result { return done(ed.ClearTextStyle()) },

	CmdSetHeadline1:   setTextType(attr.Headline1),
	CmdSetHeadline2:   setTextType(attr.Headline2),
	CmdSetHeadline3:   setTextType(attr.Headline3),
	CmdSetList:        setTextType(attr.ListBullet),
	CmdSetOrderedList: setTextType(attr.ListOrdered),
	CmdSetQuote:       setTextType(attr.Quote),
	CmdSetCodeBlock:   setTextType(attr.CodeBlock),

	CmdSetBold:          toggleStyle(attr.Bold),
	CmdSetItalic:        toggleStyle(attr.Italic),
	CmdSetUnderline:     toggleStyle(attr.Underline),
	CmdSetStrikeThrough: toggleStyle(attr.Strikethrough),

	CmdSetTextType:          handleSetTextType,
	CmdSetTextStyle:         handleSetTextStyle,
	CmdInsertDivider:        func(_ handler.Command, ed *engine.Editor) handler.Result { return done(ed.InsertDivider()) },
	CmdUpdateSelection:      handleUpdateSelection,
	CmdFormatSelectionLines: func(_ handler.Command, ed *engine.Editor) handler.Result { return done(ed.FormatSelectionLines()) },
	CmdFormatText:           handleFormatText,
	CmdReplaceText:          handleReplaceText,
	CmdInsert:               handleInsert,

	CmdGetContents: handleGetContents,
	CmdSetContents: handleSetContents,
	CmdGetText: func(_ handler.Command, ed *engine.Editor) handler.Result {
		return handler.SuccessWithData(DataText, ed.Text())
	},
	CmdGetSelection: func(_ handler.Command, ed *engine.Editor) handler.Result {
		return statusResult(ed.Status())
	},
}

// RegisterEditorCommands registers a handler for every host command.
func RegisterEditorCommands(d *Dispatcher) {
	for name, fn := range editorCommands {
		d.RegisterHandler(name, &handler.SimpleHandler{Name: name, Fn: fn})
	}
}

// CommandNames returns every host command name, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(editorCommands))
	for name := range editorCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsMutating reports whether a host command may change the document or
// its attributes.
func IsMutating(name string) bool {
	switch name {
	case CmdGetContents, CmdGetText, CmdGetSelection, CmdUpdateSelection, CmdUndo, CmdRedo:
		return false
	}
	_, ok := editorCommands[name]
	return ok
}

func done(err error) handler.Result {
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func notSupported(cmd handler.Command, _ *engine.Editor) handler.Result {
	return handler.Error(fmt.Errorf("%s: %w", cmd.Name, ErrNotSupported))
}

func setTextType(kind attr.Kind) commandFunc {
	return func(_ handler.Command, ed *engine.Editor) handler.Result {
		return done(ed.SetTextType(kind))
	}
}

func toggleStyle(kind attr.Kind) commandFunc {
	return func(_ handler.Command, ed *engine.Editor) handler.Result {
		return done(ed.ToggleTextStyle(kind))
	}
}

func statusResult(st engine.Status) handler.Result {
	return handler.Result{Status: handler.StatusOK, Data: st.Fields()}
}

func handleSetTextType(cmd handler.Command, ed *engine.Editor) handler.Result {
	name, err := cmd.String("type")
	if err != nil {
		return handler.Error(err)
	}
	return done(ed.SetTextTypeName(name))
}

func handleSetTextStyle(cmd handler.Command, ed *engine.Editor) handler.Result {
	names, err := cmd.Strings("styles")
	if err != nil {
		return handler.Error(err)
	}
	return done(ed.SetTextStyleNames(names))
}

func handleUpdateSelection(cmd handler.Command, ed *engine.Editor) handler.Result {
	start, err := cmd.Int("selStart")
	if err != nil {
		return handler.Error(err)
	}
	end, err := cmd.IntOr("selEnd", start)
	if err != nil {
		return handler.Error(err)
	}
	return statusResult(ed.UpdateSelection(start, end))
}

func handleFormatText(cmd handler.Command, ed *engine.Editor) handler.Result {
	name, err := cmd.String("attribute")
	if err != nil {
		return handler.Error(err)
	}
	index, err := cmd.Int("index")
	if err != nil {
		return handler.Error(err)
	}
	length, err := cmd.Int("len")
	if err != nil {
		return handler.Error(err)
	}
	return done(ed.FormatText(name, index, length))
}

func handleReplaceText(cmd handler.Command, ed *engine.Editor) handler.Result {
	index, err := cmd.Int("index")
	if err != nil {
		return handler.Error(err)
	}
	length, err := cmd.Int("len")
	if err != nil {
		return handler.Error(err)
	}
	data, err := cmd.String("data")
	if err != nil {
		return handler.Error(err)
	}
	return done(ed.ReplaceText(index, length, data))
}

func handleInsert(cmd handler.Command, ed *engine.Editor) handler.Result {
	index, err := cmd.Int("index")
	if err != nil {
		return handler.Error(err)
	}
	data, err := cmd.String("data")
	if err != nil {
		return handler.Error(err)
	}
	replace, err := cmd.IntOr("replaceLength", 0)
	if err != nil {
		return handler.Error(err)
	}
	return done(ed.Insert(index, data, replace))
}

func handleGetContents(_ handler.Command, ed *engine.Editor) handler.Result {
	data, err := ed.Delta().MarshalJSON()
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithData(DataDelta, handler.RawJSON(data))
}

func handleSetContents(cmd handler.Command, ed *engine.Editor) handler.Result {
	raw, err := cmd.Raw("delta")
	if err != nil {
		return handler.Error(err)
	}
	d, err := delta.Parse(raw)
	if err != nil {
		return handler.Error(fmt.Errorf("%s: %w", cmd.Name, err))
	}
	return done(ed.SetContents(d))
}
