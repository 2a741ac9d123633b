package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/plural-labs/escrow-gateway/gateway"
	"github.com/plural-labs/escrow-gateway/state"
)

// Server exposes the gateway's queries over HTTP, read-only.
type Server struct {
	gw     *gateway.Gateway
	router *mux.Router
}

func New(gw *gateway.Gateway) *Server {
	s := &Server{gw: gw, router: mux.NewRouter()}
	s.router.HandleFunc("/channels", s.handleListChannels).Methods(http.MethodGet)
	s.router.HandleFunc("/channels/{channel}/{denom}", s.handleChannelState).Methods(http.MethodGet)
	s.router.HandleFunc("/allowed", s.handleListAllowed).Methods(http.MethodGet)
	s.router.HandleFunc("/allowed/{contract}", s.handleIsAllowed).Methods(http.MethodGet)
	s.router.HandleFunc("/pending", s.handleListPending).Methods(http.MethodGet)
	s.router.HandleFunc("/fees/{contract}", s.handleFees).Methods(http.MethodGet)
	s.router.HandleFunc("/admin", s.handleAdmin).Methods(http.MethodGet)
	return s
}

// Handler returns the route table, mostly so tests can drive it with
// httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe(addr string) error {
	log.Info().Str("addr", addr).Msg("query server listening")
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleListChannels(w http.ResponseWriter, r *http.Request) {
	infos, err := s.gw.ListChannels()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, infos)
}

func (s *Server) handleChannelState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	st, err := s.gw.ChannelState(vars["channel"], vars["denom"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, st)
}

func (s *Server) handleListAllowed(w http.ResponseWriter, r *http.Request) {
	entries, err := s.gw.ListAllowed()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, entries)
}

func (s *Server) handleIsAllowed(w http.ResponseWriter, r *http.Request) {
	info, found, err := s.gw.IsAllowed(mux.Vars(r)["contract"])
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "contract not on allow list", http.StatusNotFound)
		return
	}
	writeJSON(w, info)
}

func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := s.gw.ListPending()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, pending)
}

func (s *Server) handleFees(w http.ResponseWriter, r *http.Request) {
	fees, err := s.gw.CollectedFees(mux.Vars(r)["contract"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"collected": fees.String()})
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	admin, err := s.gw.Admin()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"admin": admin})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("writing query response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, state.ErrChannelNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
