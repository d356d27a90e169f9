package petsapitest

import (
	"net/http/httptest"

	"pet-adoption-web/internal/adapters/storage/memory"
)

// Start levanta el stub en un httptest.Server. El caller hace Close().
func Start() (*httptest.Server, *Server) {
	srv := NewServer(NewService(memory.NewPetRepo()))
	return httptest.NewServer(srv.Routes()), srv
}
