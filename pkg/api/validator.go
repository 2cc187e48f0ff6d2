package api

import (
	"errors"
	"fmt"
)

var ErrUnknownAction = errors.New("unknown action")

// Validate проверяет, что команда клиента известна серверу
func (c ClientCommand) Validate() error {
	switch c.Action {
	case ActionInit, ActionPing:
		return nil
	case "":
		return errors.New("action is required")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, c.Action)
	}
}
