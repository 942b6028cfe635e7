package config

const (
	AppName    = "Spotfolio"
	AppVersion = "0.3.0"
)

const (
	DefaultServerPort    = ":8080"
	DefaultLogLevel      = "info"
	DefaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place"
)
