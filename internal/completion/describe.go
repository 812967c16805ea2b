package completion

import (
	"fmt"

	"github.com/harrison/levelverify/internal/models"
)

// Describe renders the instructions a player sees for flag.
func Describe(flag models.CompletionFlag) string {
	switch flag.Kind {
	case models.FlagPrintContains, models.FlagPrintExact:
		return fmt.Sprintf("Make your code print exactly: '%s'", flag.Value)
	case models.FlagErrorContains:
		return fmt.Sprintf("Make your code output this error message: '%s'", flag.Value)
	case models.FlagErrorExact:
		return fmt.Sprintf("Make your code output exactly this error: '%s'", flag.Value)
	case models.FlagItemsCollected:
		return fmt.Sprintf("Collect %s item(s) to complete this level", flag.Value)
	case models.FlagMovesMade:
		return fmt.Sprintf("Make at least %s move(s) to complete this level", flag.Value)
	case models.FlagAnyPrint:
		return "Use println!() to display output"
	case models.FlagAnyError:
		return "Use eprintln!() to display an error message"
	case models.FlagAnyItem:
		return "Collect all items on the level"
	}
	if flag.Raw != "" {
		return "Follow the level's requirements to complete it."
	}
	return "Collect all items and reach the goal to complete this level."
}
