package app

import (
	"github.com/mbolis/event-intake/config"
	"github.com/mbolis/event-intake/database"
	"github.com/mbolis/event-intake/forms"
)

type App struct {
	// Gateway is nil when no datastore is configured.
	Gateway database.Gateway
	Forms   *forms.Registry
	config.Config
}
