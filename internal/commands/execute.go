package commands

import (
	"fmt"

	"github.com/sandeepkv93/dhikr/internal/model"
)

type Result struct {
	Message string
}

type Handlers struct {
	SetType   func(model.PhraseType) (Result, error)
	SetMode   func(endless bool) (Result, error)
	Reset     func() (Result, error)
	Display   func(model.DisplayMode) (Result, error)
	Remind    func(hours []float64) (Result, error)
	Notify    func(enabled bool) (Result, error)
	Prayer    func(enabled bool) (Result, error)
	Theme     func(dark bool) (Result, error)
	ClearData func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeSetType:
		if handlers.SetType == nil {
			return missing(cmd.Type)
		}
		return handlers.SetType(cmd.Phrase)
	case TypeMode:
		if handlers.SetMode == nil {
			return missing(cmd.Type)
		}
		return handlers.SetMode(cmd.Enabled)
	case TypeReset:
		if handlers.Reset == nil {
			return missing(cmd.Type)
		}
		return handlers.Reset()
	case TypeDisplay:
		if handlers.Display == nil {
			return missing(cmd.Type)
		}
		return handlers.Display(cmd.Display)
	case TypeRemind:
		if handlers.Remind == nil {
			return missing(cmd.Type)
		}
		return handlers.Remind(cmd.Reminders)
	case TypeNotify:
		if handlers.Notify == nil {
			return missing(cmd.Type)
		}
		return handlers.Notify(cmd.Enabled)
	case TypePrayer:
		if handlers.Prayer == nil {
			return missing(cmd.Type)
		}
		return handlers.Prayer(cmd.Enabled)
	case TypeTheme:
		if handlers.Theme == nil {
			return missing(cmd.Type)
		}
		return handlers.Theme(cmd.Enabled)
	case TypeClearData:
		if handlers.ClearData == nil {
			return missing(cmd.Type)
		}
		return handlers.ClearData()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) (Result, error) {
	return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
