package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/dhikr/internal/model"
)

type Type string

const (
	TypeSetType   Type = "type"
	TypeMode      Type = "mode"
	TypeReset     Type = "reset"
	TypeDisplay   Type = "display"
	TypeRemind    Type = "remind"
	TypeNotify    Type = "notify"
	TypePrayer    Type = "prayer"
	TypeTheme     Type = "theme"
	TypeClearData Type = "clear-data"
)

// Types lists the palette commands in the order help shows them.
var Types = []Type{TypeSetType, TypeMode, TypeReset, TypeDisplay, TypeRemind, TypeNotify, TypePrayer, TypeTheme, TypeClearData}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type Command struct {
	Type      Type
	Raw       string
	Phrase    model.PhraseType
	Display   model.DisplayMode
	Reminders []float64
	// Enabled carries the on/off argument of mode, notify, prayer and theme.
	Enabled bool
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	cmd := Command{Type: Type(head), Raw: input}

	switch cmd.Type {
	case TypeSetType:
		return parseSetType(cmd, args)
	case TypeMode:
		return parseSwitch(cmd, args, "endless", "bounded")
	case TypeReset, TypeClearData:
		return cmd, nil
	case TypeDisplay:
		return parseDisplay(cmd, args)
	case TypeRemind:
		return parseRemind(cmd, args)
	case TypeNotify, TypePrayer:
		return parseSwitch(cmd, args, "on", "off")
	case TypeTheme:
		return parseSwitch(cmd, args, "dark", "light")
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseSetType(cmd Command, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "type requires one of tasbih, tahmid, takbir"}
	}
	t, err := model.ParsePhraseType(strings.ToLower(args[0]))
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	cmd.Phrase = t
	return cmd, nil
}

func parseDisplay(cmd Command, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "display requires one of dynamic, list, focus"}
	}
	d, err := model.ParseDisplayMode(strings.ToLower(args[0]))
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	cmd.Display = d
	return cmd, nil
}

func parseSwitch(cmd Command, args []string, on, off string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires %s or %s", cmd.Type, on, off)}
	}
	switch strings.ToLower(args[0]) {
	case on:
		cmd.Enabled = true
	case off:
		cmd.Enabled = false
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires %s or %s, got %q", cmd.Type, on, off, args[0])}
	}
	return cmd, nil
}

// parseRemind accepts hours as "9", "17.5" or "17:30", separated by
// commas or spaces. "none" clears every reminder.
func parseRemind(cmd Command, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remind requires hours, e.g. remind 9,14,17:30"}
	}
	if len(args) == 1 && strings.EqualFold(args[0], "none") {
		cmd.Reminders = []float64{}
		return cmd, nil
	}
	fields := strings.FieldsFunc(strings.Join(args, " "), func(r rune) bool { return r == ',' || r == ' ' })
	hours := make([]float64, 0, len(fields))
	for _, f := range fields {
		h, err := parseHour(f)
		if err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
		}
		hours = append(hours, model.RoundReminderTime(h))
	}
	cmd.Reminders = hours
	return cmd, nil
}

func parseHour(s string) (float64, error) {
	var h float64
	if hh, mm, ok := strings.Cut(s, ":"); ok {
		hour, err := strconv.Atoi(hh)
		if err != nil {
			return 0, fmt.Errorf("invalid hour %q", s)
		}
		minute, err := strconv.Atoi(mm)
		if err != nil || minute < 0 || minute >= 60 {
			return 0, fmt.Errorf("invalid minutes %q", s)
		}
		h = float64(hour) + float64(minute)/60
	} else {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid hour %q", s)
		}
		h = v
	}
	if h < 0 || h >= 24 {
		return 0, fmt.Errorf("hour %q out of range", s)
	}
	return h, nil
}
