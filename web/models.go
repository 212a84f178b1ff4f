package web

import (
	"patota-bot/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
	// GroupID filters incoming events; events for other groups are acknowledged
	// and dropped
	GroupID string
	// Announce posts a message to the configured Discord channel
	Announce func(content string)
}

// Server is the HTTP server that handles webhook requests
type Server struct {
	api      *api.API
	groupID  string
	announce func(content string)
}
