package config

// Значения по умолчанию для незаполненных полей конфигурации.
const (
	DefaultStateFile           = "state.json"
	DefaultExportThreshold     = 25
	DefaultMatchTime           = "20:00-22:00"
	DefaultVenue               = "Горизонт-арена"
	DefaultServerHost          = "0.0.0.0"
	DefaultServerPort          = 8080
	DefaultShutdownTimeoutSecs = 10
)
