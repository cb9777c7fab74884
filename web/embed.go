package web

import (
	"embed"
	"io/fs"

	"github.com/rs/zerolog/log"
)

//go:embed static templates
var content embed.FS

// StaticFS returns the static file system.
func StaticFS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		log.Fatal().Err(err).Msg("creating static sub-filesystem")
	}
	return sub
}

// TemplatesFS returns the templates file system.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		log.Fatal().Err(err).Msg("creating templates sub-filesystem")
	}
	return sub
}
